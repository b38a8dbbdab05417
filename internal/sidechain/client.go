// Package sidechain layers the contract node's convention over a routed
// caller: a fixed method name with a nested contract/table/query payload.
package sidechain

import (
	"context"
	"encoding/json"
	"fmt"
)

// Caller routes one JSON-RPC call; satisfied by failover.Client.
type Caller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

// Query selects contract-table rows, e.g. {"account": "alice", "symbol": "TKN"}.
type Query map[string]any

type findParams struct {
	Contract string `json:"contract"`
	Table    string `json:"table"`
	Query    Query  `json:"query"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Client exposes contract-table query helpers for the sidechain.
type Client struct {
	caller Caller
}

// New creates a sidechain client on top of a routed caller.
func New(caller Caller) *Client {
	return &Client{caller: caller}
}

// Find returns up to limit rows of a contract table matching query.
func (c *Client) Find(ctx context.Context, contract, table string, query Query, limit, offset int) (json.RawMessage, error) {
	return c.caller.Call(ctx, "find", findParams{
		Contract: contract,
		Table:    table,
		Query:    query,
		Limit:    limit,
		Offset:   offset,
	})
}

// FindOne returns the first contract-table row matching query.
func (c *Client) FindOne(ctx context.Context, contract, table string, query Query) (json.RawMessage, error) {
	return c.caller.Call(ctx, "findOne", findParams{
		Contract: contract,
		Table:    table,
		Query:    query,
	})
}

// TokenBalance is one account's balance of one token.
type TokenBalance struct {
	Account string `json:"account"`
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
	Stake   string `json:"stake"`
}

// TokenBalance fetches an account's balance of a token symbol from the
// sidechain's token contract.
func (c *Client) TokenBalance(ctx context.Context, account, symbol string) (*TokenBalance, error) {
	raw, err := c.FindOne(ctx, "tokens", "balances", Query{
		"account": account,
		"symbol":  symbol,
	})
	if err != nil {
		return nil, err
	}
	var balance TokenBalance
	if err := json.Unmarshal(raw, &balance); err != nil {
		return nil, fmt.Errorf("decoding token balance: %w", err)
	}
	return &balance, nil
}
