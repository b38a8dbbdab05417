package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics
type Collector struct {
	// Call metrics
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec

	// Endpoint health metrics
	EndpointFailureCount *prometheus.GaugeVec
	EndpointAvgLatency   *prometheus.GaugeVec

	// Primary marker metrics
	PrimarySwitchesTotal *prometheus.CounterVec
}

// NewCollector creates and registers all metrics
func NewCollector() *Collector {
	return &Collector{
		CallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainroute_calls_total",
				Help: "Total number of endpoint call attempts",
			},
			[]string{"service", "endpoint", "outcome"},
		),

		CallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainroute_call_duration_seconds",
				Help:    "Endpoint call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "endpoint"},
		),

		EndpointFailureCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chainroute_endpoint_failure_count",
				Help: "Current decaying failure count per endpoint",
			},
			[]string{"service", "endpoint"},
		),

		EndpointAvgLatency: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chainroute_endpoint_avg_response_ms",
				Help: "Running mean response time of successful calls in milliseconds",
			},
			[]string{"service", "endpoint"},
		),

		PrimarySwitchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainroute_primary_switches_total",
				Help: "Number of times the primary endpoint marker moved",
			},
			[]string{"service"},
		),
	}
}
