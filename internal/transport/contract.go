package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contractPath is appended to a sidechain node's base URL for contract-table
// queries.
const contractPath = "/contracts"

// ContractTransport posts the JSON-RPC envelope to a sidechain contract node.
// It derives the request URL from the endpoint base URL and is otherwise
// identical to NodeTransport.
type ContractTransport struct {
	client *http.Client
}

// NewContractTransport creates a contract transport. A nil client falls back
// to http.DefaultClient.
func NewContractTransport(client *http.Client) *ContractTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &ContractTransport{client: client}
}

// Call implements Transport.
func (t *ContractTransport) Call(ctx context.Context, endpointURL, method string, params any) (json.RawMessage, error) {
	url := strings.TrimRight(endpointURL, "/") + contractPath
	return post(ctx, t.client, url, method, params)
}
