// Package chain layers the primary chain's method-name convention over a
// routed caller. It builds fully qualified method strings and decodes
// results; routing, health tracking and retries live below it.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
)

// apiPrefix namespaces every read method of the primary chain's public API.
const apiPrefix = "condenser_api."

// Caller routes one JSON-RPC call; satisfied by failover.Client.
type Caller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

// Client exposes typed read helpers for the primary chain.
type Client struct {
	caller Caller
}

// New creates a chain client on top of a routed caller.
func New(caller Caller) *Client {
	return &Client{caller: caller}
}

// GlobalProperties is the chain's dynamic global state.
type GlobalProperties struct {
	HeadBlockNumber uint64 `json:"head_block_number"`
	HeadBlockID     string `json:"head_block_id"`
	Time            string `json:"time"`
	CurrentWitness  string `json:"current_witness"`
}

// GlobalProperties fetches the chain's current dynamic global properties.
func (c *Client) GlobalProperties(ctx context.Context) (*GlobalProperties, error) {
	raw, err := c.caller.Call(ctx, apiPrefix+"get_dynamic_global_properties", []any{})
	if err != nil {
		return nil, err
	}
	var props GlobalProperties
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("decoding global properties: %w", err)
	}
	return &props, nil
}

// Account is the subset of account state the router surfaces.
type Account struct {
	Name      string `json:"name"`
	Created   string `json:"created"`
	Balance   string `json:"balance"`
	PostCount int64  `json:"post_count"`
}

// Accounts fetches the named accounts.
func (c *Client) Accounts(ctx context.Context, names []string) ([]Account, error) {
	raw, err := c.caller.Call(ctx, apiPrefix+"get_accounts", []any{names})
	if err != nil {
		return nil, err
	}
	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return accounts, nil
}

// Content is a single post or comment.
type Content struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Created  string `json:"created"`
	NetVotes int    `json:"net_votes"`
}

// Content fetches one post or comment by author and permlink.
func (c *Client) Content(ctx context.Context, author, permlink string) (*Content, error) {
	raw, err := c.caller.Call(ctx, apiPrefix+"get_content", []any{author, permlink})
	if err != nil {
		return nil, err
	}
	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	return &content, nil
}

// AccountHistory fetches up to limit history entries for an account starting
// at index start (-1 for the most recent). The entries are returned raw; their
// shape varies per operation type.
func (c *Client) AccountHistory(ctx context.Context, account string, start int64, limit int) (json.RawMessage, error) {
	return c.caller.Call(ctx, apiPrefix+"get_account_history", []any{account, start, limit})
}
