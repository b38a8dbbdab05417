package classify

import (
	"errors"
	"fmt"
	"testing"
)

// TestPenalizingTransportAndStatus tests that wire-level failures always
// count against the endpoint
func TestPenalizingTransportAndStatus(t *testing.T) {
	errs := []error{
		&TransportError{Endpoint: "https://node-a", Err: errors.New("connection refused")},
		&HTTPStatusError{Endpoint: "https://node-a", StatusCode: 503},
		&HTTPStatusError{Endpoint: "https://node-a", StatusCode: 429},
		errors.New("opaque failure"),
	}

	for _, err := range errs {
		if !Penalizing(err) {
			t.Errorf("%v should be penalizing", err)
		}
	}
}

// TestPenalizingRPCCodes tests the node-unhealthy allow-list for parsed
// JSON-RPC errors
func TestPenalizingRPCCodes(t *testing.T) {
	cases := []struct {
		code       int
		penalizing bool
	}{
		{CodeInternalError, true},
		{CodeServerError, true},
		{-32601, false}, // method not found
		{-32602, false}, // invalid params
		{-32700, false}, // parse error
		{1, false},
		{0, false},
	}

	for _, tc := range cases {
		err := &RPCError{Code: tc.code, Message: "x"}
		if got := Penalizing(err); got != tc.penalizing {
			t.Errorf("Code %d: expected penalizing=%v, got %v", tc.code, tc.penalizing, got)
		}
	}
}

// TestPenalizingWrappedRPCError tests classification through error wrapping
func TestPenalizingWrappedRPCError(t *testing.T) {
	wrapped := fmt.Errorf("calling get_accounts: %w", &RPCError{Code: -32602, Message: "invalid params"})
	if Penalizing(wrapped) {
		t.Error("Wrapped application-level RPC error should not penalize")
	}

	wrapped = fmt.Errorf("calling get_accounts: %w", &RPCError{Code: CodeInternalError, Message: "internal error"})
	if !Penalizing(wrapped) {
		t.Error("Wrapped internal error should penalize")
	}
}

// TestErrorMessages tests the error strings carry endpoint and cause
func TestErrorMessages(t *testing.T) {
	te := &TransportError{Endpoint: "https://node-a", Err: errors.New("dial timeout")}
	if te.Error() != "transport error calling https://node-a: dial timeout" {
		t.Errorf("Unexpected transport error message: %q", te.Error())
	}
	if !errors.Is(te, te.Err) {
		t.Error("TransportError should unwrap its cause")
	}

	he := &HTTPStatusError{Endpoint: "https://node-a", StatusCode: 502}
	if he.Error() != "endpoint https://node-a returned HTTP status 502" {
		t.Errorf("Unexpected status error message: %q", he.Error())
	}

	re := &RPCError{Code: -32000, Message: "server error"}
	if re.Error() != "rpc error -32000: server error" {
		t.Errorf("Unexpected rpc error message: %q", re.Error())
	}
}
