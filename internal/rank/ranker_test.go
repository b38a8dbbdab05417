package rank

import (
	"reflect"
	"testing"
	"time"

	"chainroute/internal/endpoint"
)

// TestOrderRecentFailureSortsLast tests that a recently failed endpoint never
// ranks ahead of one without a recent failure, even with better latency
func TestOrderRecentFailureSortsLast(t *testing.T) {
	now := time.Now()
	urls := []string{"https://fast-but-failing", "https://slow-but-stable"}
	snap := map[string]endpoint.Health{
		"https://fast-but-failing": {
			LastFailureAt: now.Add(-10 * time.Second),
			AvgResponseMs: 20,
		},
		"https://slow-but-stable": {
			AvgResponseMs: 900,
		},
	}

	ordered := New(0).Order(urls, snap, now)

	if ordered[0] != "https://slow-but-stable" {
		t.Errorf("Stable endpoint should rank first, got %v", ordered)
	}
}

// TestOrderFailureCountTieBreak tests ordering by failure count when no
// endpoint failed recently
func TestOrderFailureCountTieBreak(t *testing.T) {
	now := time.Now()
	old := now.Add(-5 * time.Minute)
	urls := []string{"https://node-a", "https://node-b", "https://node-c"}
	snap := map[string]endpoint.Health{
		"https://node-a": {LastFailureAt: old, FailureCount: 3},
		"https://node-b": {LastFailureAt: old, FailureCount: 0},
		"https://node-c": {LastFailureAt: old, FailureCount: 1},
	}

	ordered := New(0).Order(urls, snap, now)

	want := []string{"https://node-b", "https://node-c", "https://node-a"}
	if !reflect.DeepEqual(ordered, want) {
		t.Errorf("Expected %v, got %v", want, ordered)
	}
}

// TestOrderLatencyTieBreak tests ordering by mean latency among endpoints
// with equal failure counts
func TestOrderLatencyTieBreak(t *testing.T) {
	now := time.Now()
	urls := []string{"https://node-a", "https://node-b", "https://node-c"}
	snap := map[string]endpoint.Health{
		"https://node-a": {AvgResponseMs: 300},
		"https://node-b": {AvgResponseMs: 80},
		"https://node-c": {AvgResponseMs: 150},
	}

	ordered := New(0).Order(urls, snap, now)

	want := []string{"https://node-b", "https://node-c", "https://node-a"}
	if !reflect.DeepEqual(ordered, want) {
		t.Errorf("Expected %v, got %v", want, ordered)
	}
}

// TestOrderOptimisticUntried tests that an endpoint with no successful calls
// yet sorts ahead of slower proven endpoints
func TestOrderOptimisticUntried(t *testing.T) {
	now := time.Now()
	urls := []string{"https://proven", "https://untried"}
	snap := map[string]endpoint.Health{
		"https://proven":  {AvgResponseMs: 120},
		"https://untried": {},
	}

	ordered := New(0).Order(urls, snap, now)

	if ordered[0] != "https://untried" {
		t.Errorf("Untried endpoint should be tried optimistically, got %v", ordered)
	}
}

// TestOrderIsPure tests that ordering twice over the same snapshot yields an
// identical sequence and does not mutate the input
func TestOrderIsPure(t *testing.T) {
	now := time.Now()
	urls := []string{"https://node-a", "https://node-b", "https://node-c"}
	snap := map[string]endpoint.Health{
		"https://node-a": {FailureCount: 2},
		"https://node-b": {FailureCount: 1, AvgResponseMs: 40},
		"https://node-c": {FailureCount: 1, AvgResponseMs: 10},
	}
	rk := New(0)

	first := rk.Order(urls, snap, now)
	second := rk.Order(urls, snap, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Ranking should be deterministic: %v vs %v", first, second)
	}
	if urls[0] != "https://node-a" {
		t.Error("Order must not mutate the input slice")
	}
}

// TestOrderWindowBoundary tests that a failure outside the window no longer
// demotes the endpoint
func TestOrderWindowBoundary(t *testing.T) {
	now := time.Now()
	urls := []string{"https://node-a", "https://node-b"}
	snap := map[string]endpoint.Health{
		"https://node-a": {LastFailureAt: now.Add(-61 * time.Second), AvgResponseMs: 10},
		"https://node-b": {AvgResponseMs: 50},
	}

	ordered := New(60 * time.Second).Order(urls, snap, now)

	if ordered[0] != "https://node-a" {
		t.Errorf("Failure older than the window should not demote, got %v", ordered)
	}
}
