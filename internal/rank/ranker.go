package rank

import (
	"sort"
	"time"

	"chainroute/internal/endpoint"
)

// DefaultFailureWindow is how long a failure keeps an endpoint demoted.
const DefaultFailureWindow = 60 * time.Second

// Ranker orders candidate endpoints by observed reliability and latency.
type Ranker struct {
	failureWindow time.Duration
}

// New creates a ranker. A non-positive window falls back to the default.
func New(failureWindow time.Duration) *Ranker {
	if failureWindow <= 0 {
		failureWindow = DefaultFailureWindow
	}
	return &Ranker{failureWindow: failureWindow}
}

// Order returns the URLs sorted into attempt order using successive
// tie-breaks: endpoints without a recent failure first, then lower failure
// count, then lower average response time. Endpoints with no successful call
// yet have a zero average and are tried optimistically. The result is a pure
// function of the inputs; callers recompute it on every call.
func (rk *Ranker) Order(urls []string, snap map[string]endpoint.Health, now time.Time) []string {
	ordered := make([]string, len(urls))
	copy(ordered, urls)

	sort.SliceStable(ordered, func(i, j int) bool {
		hi, hj := snap[ordered[i]], snap[ordered[j]]

		fi := hi.RecentlyFailed(now, rk.failureWindow)
		fj := hj.RecentlyFailed(now, rk.failureWindow)
		if fi != fj {
			return !fi
		}
		if hi.FailureCount != hj.FailureCount {
			return hi.FailureCount < hj.FailureCount
		}
		return hi.AvgResponseMs < hj.AvgResponseMs
	})

	return ordered
}
