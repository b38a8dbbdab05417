// Package classify decides whether a call outcome counts against an
// endpoint's health or is an application-level result that would occur
// identically on any endpoint.
package classify

import (
	"encoding/json"
	"errors"
	"fmt"
)

// JSON-RPC error codes that indicate an unhealthy node rather than a bad
// request. Every other code is treated as a deterministic application error.
const (
	CodeInternalError = -32603
	CodeServerError   = -32000
)

// TransportError is a connection, DNS or timeout failure that occurred before
// any HTTP response was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is a non-2xx HTTP response from an endpoint.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("endpoint %s returned HTTP status %d", e.Endpoint, e.StatusCode)
}

// RPCError is a parsed JSON-RPC error envelope.
type RPCError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Penalizing reports whether the error should be recorded against the
// endpoint's health. Transport failures and bad HTTP statuses always
// penalize; a JSON-RPC error penalizes only when its code is on the
// node-unhealthy allow-list.
func Penalizing(err error) bool {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case CodeInternalError, CodeServerError:
			return true
		default:
			return false
		}
	}
	// Anything that is not a parsed RPC envelope reached the wire or the
	// HTTP layer and failed there.
	return true
}
