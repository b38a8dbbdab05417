package chain

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// fakeCaller records the routed method and params and replays a canned result.
type fakeCaller struct {
	method string
	params any
	result json.RawMessage
	err    error
}

func (f *fakeCaller) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	f.method = method
	f.params = params
	return f.result, f.err
}

// TestGlobalProperties tests method naming and result decoding
func TestGlobalProperties(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{
		"head_block_number": 89123456,
		"head_block_id": "abc123",
		"time": "2024-05-01T12:00:00",
		"current_witness": "gtg"
	}`)}
	c := New(caller)

	props, err := c.GlobalProperties(context.Background())
	if err != nil {
		t.Fatalf("GlobalProperties failed: %v", err)
	}

	if caller.method != "condenser_api.get_dynamic_global_properties" {
		t.Errorf("Unexpected method: %q", caller.method)
	}
	if props.HeadBlockNumber != 89123456 || props.CurrentWitness != "gtg" {
		t.Errorf("Unexpected properties: %+v", props)
	}
}

// TestAccounts tests the nested name-list parameter convention
func TestAccounts(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[
		{"name": "alice", "balance": "1.000 HIVE", "post_count": 12}
	]`)}
	c := New(caller)

	accounts, err := c.Accounts(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Accounts failed: %v", err)
	}

	if caller.method != "condenser_api.get_accounts" {
		t.Errorf("Unexpected method: %q", caller.method)
	}
	want := []any{[]string{"alice"}}
	if !reflect.DeepEqual(caller.params, want) {
		t.Errorf("Expected params %v, got %v", want, caller.params)
	}
	if len(accounts) != 1 || accounts[0].Name != "alice" || accounts[0].PostCount != 12 {
		t.Errorf("Unexpected accounts: %+v", accounts)
	}
}

// TestContent tests positional author and permlink params
func TestContent(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{
		"author": "alice", "permlink": "hello-world", "title": "Hello", "net_votes": 7
	}`)}
	c := New(caller)

	content, err := c.Content(context.Background(), "alice", "hello-world")
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}

	if caller.method != "condenser_api.get_content" {
		t.Errorf("Unexpected method: %q", caller.method)
	}
	if !reflect.DeepEqual(caller.params, []any{"alice", "hello-world"}) {
		t.Errorf("Unexpected params: %v", caller.params)
	}
	if content.Title != "Hello" || content.NetVotes != 7 {
		t.Errorf("Unexpected content: %+v", content)
	}
}

// TestCallerErrorPropagates tests that routed errors surface unchanged
func TestCallerErrorPropagates(t *testing.T) {
	routed := errors.New("all 5 endpoints failed, last error: connection refused")
	caller := &fakeCaller{err: routed}
	c := New(caller)

	if _, err := c.GlobalProperties(context.Background()); !errors.Is(err, routed) {
		t.Errorf("Expected routed error verbatim, got %v", err)
	}
}

// TestDecodeErrorIsReported tests the decode failure path
func TestDecodeErrorIsReported(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`"not an object"`)}
	c := New(caller)

	if _, err := c.GlobalProperties(context.Background()); err == nil {
		t.Error("Undecodable result should produce an error")
	}
}
