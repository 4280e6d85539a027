// Package telemetry carries the framework's dispatch metrics.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics observes operation dispatch outcomes per kind. A nil
// receiver disables observation so callers never need to branch.
type DispatchMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewDispatchMetrics registers the dispatch collectors with reg. Returns nil
// when reg is nil, which disables metrics entirely.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return nil
	}
	m := &DispatchMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fastmcp_dispatch_total",
			Help: "Dispatched operations by kind and outcome.",
		}, []string{"kind", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fastmcp_dispatch_duration_seconds",
			Help:    "Operation dispatch latency by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.total, m.duration)
	return m
}

// Observe records one dispatch outcome.
func (m *DispatchMetrics) Observe(kind, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(kind, status).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
