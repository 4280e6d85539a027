package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchMetrics_NilRegisterer(t *testing.T) {
	m := NewDispatchMetrics(nil)
	assert.Nil(t, m)
	// Observing through a nil receiver is a no-op, not a panic.
	m.Observe("tool", "ok", time.Millisecond)
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDispatchMetrics(reg)
	require.NotNil(t, m)

	m.Observe("tool", "ok", 5*time.Millisecond)
	m.Observe("tool", "ok", time.Millisecond)
	m.Observe("prompt", "error", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.total.WithLabelValues("tool", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.total.WithLabelValues("prompt", "error")))
}
