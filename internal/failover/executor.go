// Package failover routes JSON-RPC calls across a set of endpoints, trying
// them in ranked order until one succeeds. Observed outcomes feed the health
// store so that degraded endpoints sink to the back of the attempt order on
// the very next call.
package failover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chainroute/internal/classify"
	"chainroute/internal/endpoint"
	"chainroute/internal/metrics"
	"chainroute/internal/rank"
	"chainroute/internal/transport"
)

const (
	defaultAttemptTimeout = 5 * time.Second

	// primarySwitchThreshold is the failure count at which a failing primary
	// triggers re-election of the marker.
	primarySwitchThreshold = 2
)

// AllFailedError reports that every configured endpoint produced a penalizing
// failure for one call.
type AllFailedError struct {
	Attempts int
	LastErr  error
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("all %d endpoints failed, last error: %v", e.Attempts, e.LastErr)
}

func (e *AllFailedError) Unwrap() error {
	return e.LastErr
}

// Options configures a Client.
type Options struct {
	// Service names the remote service in logs and metrics, e.g. "chain".
	Service string

	// Endpoints is the static list of candidate URLs. At least one is required.
	Endpoints []string

	// Transport performs a single attempt against one endpoint.
	Transport transport.Transport

	// AttemptTimeout bounds each individual attempt so one hung endpoint
	// cannot stall the whole failover chain. Zero means the default.
	AttemptTimeout time.Duration

	// FailureWindow is how long a failure keeps an endpoint demoted in the
	// ranking. Zero means the default.
	FailureWindow time.Duration

	Logger    *zap.SugaredLogger
	Collector *metrics.Collector
}

// Client is a failover JSON-RPC client for one remote service. The health
// store is its only state that persists across calls; each call is routed
// independently from a fresh ranking.
type Client struct {
	service        string
	store          *endpoint.Store
	ranker         *rank.Ranker
	transport      transport.Transport
	attemptTimeout time.Duration
	logger         *zap.SugaredLogger
	collector      *metrics.Collector

	mux     sync.RWMutex
	primary string
}

// New creates a failover client.
func New(opts Options) (*Client, error) {
	if len(opts.Endpoints) == 0 {
		return nil, errors.New("failover: no endpoints configured")
	}
	if opts.Transport == nil {
		return nil, errors.New("failover: no transport configured")
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = defaultAttemptTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	return &Client{
		service:        opts.Service,
		store:          endpoint.NewStore(opts.Endpoints),
		ranker:         rank.New(opts.FailureWindow),
		transport:      opts.Transport,
		attemptTimeout: opts.AttemptTimeout,
		logger:         opts.Logger,
		collector:      opts.Collector,
		primary:        opts.Endpoints[0],
	}, nil
}

// Call invokes method with params, attempting endpoints in ranked order until
// one succeeds. Penalizing failures are recorded and the next endpoint is
// tried; an application-level error is returned immediately without touching
// further endpoints. When every endpoint fails, the returned error is an
// AllFailedError carrying the last underlying failure.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	callID := uuid.New().String()
	ordered := c.ranker.Order(c.store.URLs(), c.store.Snapshot(), time.Now())

	var lastErr error
	attempts := 0
	for _, url := range ordered {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		start := time.Now()
		result, err := c.transport.Call(attemptCtx, url, method, params)
		latency := time.Since(start)
		cancel()

		if err == nil {
			latencyMs := float64(latency.Microseconds()) / 1000.0
			c.store.RecordSuccess(url, latencyMs)
			c.observe(url, "success", latency)
			c.logger.Debugw("call_succeeded",
				"call_id", callID,
				"service", c.service,
				"endpoint", url,
				"method", method,
				"attempt", attempts,
				"latency_ms", latencyMs)
			return result, nil
		}

		// The caller cancelled; the aborted attempt is not an endpoint
		// verdict and is not recorded.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if !classify.Penalizing(err) {
			c.observe(url, "app_error", latency)
			c.logger.Debugw("application_error",
				"call_id", callID,
				"service", c.service,
				"endpoint", url,
				"method", method,
				"error", err.Error())
			return nil, err
		}

		c.store.RecordFailure(url)
		c.observe(url, "failure", latency)
		c.logger.Warnw("endpoint_failed",
			"call_id", callID,
			"service", c.service,
			"endpoint", url,
			"method", method,
			"attempt", attempts,
			"error", err.Error())

		lastErr = err
		c.maybeRotatePrimary(url)
	}

	return nil, &AllFailedError{Attempts: attempts, LastErr: lastErr}
}

// maybeRotatePrimary moves the informational primary marker after the current
// primary has accumulated enough failures and the ranking prefers another
// endpoint. The marker has no effect on routing.
func (c *Client) maybeRotatePrimary(failed string) {
	c.mux.RLock()
	primary := c.primary
	c.mux.RUnlock()

	if failed != primary {
		return
	}

	snap := c.store.Snapshot()
	if snap[failed].FailureCount < primarySwitchThreshold {
		return
	}

	ordered := c.ranker.Order(c.store.URLs(), snap, time.Now())
	if len(ordered) == 0 || ordered[0] == primary {
		return
	}

	c.mux.Lock()
	c.primary = ordered[0]
	c.mux.Unlock()

	c.logger.Infow("primary_endpoint_switched",
		"service", c.service,
		"from", primary,
		"to", ordered[0])
	if c.collector != nil {
		c.collector.PrimarySwitchesTotal.WithLabelValues(c.service).Inc()
	}
}

// observe records per-attempt metrics when a collector is configured.
func (c *Client) observe(url, outcome string, latency time.Duration) {
	if c.collector == nil {
		return
	}
	c.collector.CallsTotal.WithLabelValues(c.service, url, outcome).Inc()
	c.collector.CallDuration.WithLabelValues(c.service, url).Observe(latency.Seconds())
}

// Service returns the configured service name.
func (c *Client) Service() string {
	return c.service
}

// Statuses returns the current health record of every endpoint, keyed by URL.
func (c *Client) Statuses() map[string]endpoint.Health {
	return c.store.Snapshot()
}

// Primary returns the current primary endpoint marker. It is informational
// only; routing always recomputes the ranking.
func (c *Client) Primary() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.primary
}

// SetEndpoints replaces the endpoint set, preserving health records of URLs
// that survive the change. If the current primary is removed, the marker
// moves to the first new endpoint.
func (c *Client) SetEndpoints(urls []string) error {
	if len(urls) == 0 {
		return errors.New("failover: no endpoints configured")
	}
	c.store.Replace(urls)

	c.mux.Lock()
	defer c.mux.Unlock()
	found := false
	for _, u := range urls {
		if u == c.primary {
			found = true
			break
		}
	}
	if !found {
		c.primary = urls[0]
	}
	return nil
}
