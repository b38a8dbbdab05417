// Package transport turns (endpoint, method, params) into an HTTP JSON-RPC
// request and parses the response envelope. Adapters carry no business logic
// and no health state; they differ only in how the request URL is shaped.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"chainroute/internal/classify"
)

// Transport performs one JSON-RPC call against a single endpoint.
type Transport interface {
	Call(ctx context.Context, endpointURL, method string, params any) (json.RawMessage, error)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcErrorBody   `json:"error"`
}

type rpcErrorBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// post sends the envelope to url and extracts result or error.
func post(ctx context.Context, client *http.Client, url, method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request for %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &classify.TransportError{Endpoint: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &classify.TransportError{Endpoint: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &classify.HTTPStatusError{Endpoint: url, StatusCode: resp.StatusCode}
	}

	var parsed rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &classify.TransportError{Endpoint: url, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &classify.RPCError{
			Code:    parsed.Error.Code,
			Message: parsed.Error.Message,
			Data:    parsed.Error.Data,
		}
	}
	if parsed.Result == nil {
		return nil, &classify.TransportError{Endpoint: url, Err: errors.New("response carries neither result nor error")}
	}
	return parsed.Result, nil
}
