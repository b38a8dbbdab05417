package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"chainroute/internal/endpoint"
)

// fakeSource serves a mutable health snapshot for one service.
type fakeSource struct {
	name string
	snap map[string]endpoint.Health
}

func (f *fakeSource) Service() string { return f.name }

func (f *fakeSource) Statuses() map[string]endpoint.Health { return f.snap }

// TestExportDropsRemovedEndpoints tests that gauge series disappear when an
// endpoint leaves the set instead of persisting at their last values
func TestExportDropsRemovedEndpoints(t *testing.T) {
	collector := NewCollector()
	src := &fakeSource{
		name: "chain",
		snap: map[string]endpoint.Health{
			"https://n1": {FailureCount: 2, AvgResponseMs: 15},
			"https://n2": {FailureCount: 1, AvgResponseMs: 40},
		},
	}
	e := NewExporter(collector, src)

	e.export()

	if got := testutil.CollectAndCount(collector.EndpointFailureCount); got != 2 {
		t.Fatalf("Expected 2 failure count series, got %d", got)
	}
	if got := testutil.ToFloat64(collector.EndpointFailureCount.WithLabelValues("chain", "https://n1")); got != 2 {
		t.Errorf("Expected failure count 2 for n1, got %v", got)
	}
	if got := testutil.ToFloat64(collector.EndpointAvgLatency.WithLabelValues("chain", "https://n2")); got != 40 {
		t.Errorf("Expected avg latency 40 for n2, got %v", got)
	}

	// n2 leaves the endpoint set, as after a config reload.
	src.snap = map[string]endpoint.Health{
		"https://n1": {FailureCount: 3, AvgResponseMs: 15},
	}
	e.export()

	if got := testutil.CollectAndCount(collector.EndpointFailureCount); got != 1 {
		t.Errorf("Removed endpoint should leave no failure count series, got %d", got)
	}
	if got := testutil.CollectAndCount(collector.EndpointAvgLatency); got != 1 {
		t.Errorf("Removed endpoint should leave no latency series, got %d", got)
	}
	if got := testutil.ToFloat64(collector.EndpointFailureCount.WithLabelValues("chain", "https://n1")); got != 3 {
		t.Errorf("Surviving endpoint should report its fresh value, got %v", got)
	}
}
