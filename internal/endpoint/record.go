package endpoint

import (
	"sync"
	"time"
)

// Health is a point-in-time copy of an endpoint's health record.
type Health struct {
	LastSuccessAt time.Time `json:"last_success_at"`
	LastFailureAt time.Time `json:"last_failure_at"`
	FailureCount  int       `json:"failure_count"`
	AvgResponseMs float64   `json:"avg_response_ms"`
	TotalRequests int64     `json:"total_requests"`
}

// RecentlyFailed reports whether the endpoint failed within the given window of now.
func (h Health) RecentlyFailed(now time.Time, window time.Duration) bool {
	if h.LastFailureAt.IsZero() {
		return false
	}
	return now.Sub(h.LastFailureAt) < window
}

// Record tracks observed call outcomes for a single endpoint URL.
// A record lives for the process lifetime; it is mutated only through
// RecordSuccess and RecordFailure.
type Record struct {
	mux           sync.Mutex
	lastSuccessAt time.Time
	lastFailureAt time.Time
	failureCount  int
	avgResponseMs float64
	totalRequests int64
}

// NewRecord creates a record with neutral initial values: the endpoint is
// treated as having just succeeded and never failed.
func NewRecord() *Record {
	return &Record{
		lastSuccessAt: time.Now(),
	}
}

// RecordSuccess registers a successful call and its latency in milliseconds.
// The failure count decays by one (never below zero) and the latency feeds
// the running mean.
func (r *Record) RecordSuccess(latencyMs float64) {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.totalRequests++
	r.lastSuccessAt = time.Now()
	if r.failureCount > 0 {
		r.failureCount--
	}
	r.avgResponseMs += (latencyMs - r.avgResponseMs) / float64(r.totalRequests)
}

// RecordFailure registers a penalized failed call.
func (r *Record) RecordFailure() {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.totalRequests++
	r.lastFailureAt = time.Now()
	r.failureCount++
}

// Health returns a copy of the record's current values.
func (r *Record) Health() Health {
	r.mux.Lock()
	defer r.mux.Unlock()

	return Health{
		LastSuccessAt: r.lastSuccessAt,
		LastFailureAt: r.lastFailureAt,
		FailureCount:  r.failureCount,
		AvgResponseMs: r.avgResponseMs,
		TotalRequests: r.totalRequests,
	}
}
