package metrics

import (
	"context"
	"time"

	"chainroute/internal/endpoint"
)

// StatusSource exposes a routed client's health snapshot for export.
type StatusSource interface {
	Service() string
	Statuses() map[string]endpoint.Health
}

// Exporter periodically updates gauge metrics from client health snapshots
type Exporter struct {
	collector *Collector
	sources   []StatusSource
}

// NewExporter creates a new metrics exporter
func NewExporter(collector *Collector, sources ...StatusSource) *Exporter {
	return &Exporter{
		collector: collector,
		sources:   sources,
	}
}

// Start begins the metrics export loop
func (e *Exporter) Start(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.export()
		}
	}
}

// export updates all gauge metrics
func (e *Exporter) export() {
	// Drop series for endpoints that left the set since the last export.
	e.collector.EndpointFailureCount.Reset()
	e.collector.EndpointAvgLatency.Reset()

	for _, src := range e.sources {
		service := src.Service()
		for url, h := range src.Statuses() {
			e.collector.EndpointFailureCount.WithLabelValues(service, url).Set(float64(h.FailureCount))
			e.collector.EndpointAvgLatency.WithLabelValues(service, url).Set(h.AvgResponseMs)
		}
	}
}
