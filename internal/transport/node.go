package transport

import (
	"context"
	"encoding/json"
	"net/http"
)

// NodeTransport posts the JSON-RPC envelope directly to a chain node URL.
// The method string is passed through verbatim; namespacing is the caller's
// convention.
type NodeTransport struct {
	client *http.Client
}

// NewNodeTransport creates a node transport. A nil client falls back to
// http.DefaultClient; per-attempt timeouts are owned by the caller's context.
func NewNodeTransport(client *http.Client) *NodeTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &NodeTransport{client: client}
}

// Call implements Transport.
func (t *NodeTransport) Call(ctx context.Context, endpointURL, method string, params any) (json.RawMessage, error) {
	return post(ctx, t.client, endpointURL, method, params)
}
