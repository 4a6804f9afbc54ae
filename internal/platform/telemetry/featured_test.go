package telemetry

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFeaturedMetrics_ObserveResolution verifies counts per label pair.
func TestFeaturedMetrics_ObserveResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFeaturedMetrics(reg)

	m.ObserveResolution("api", "ok", 120*time.Millisecond)
	m.ObserveResolution("api", "ok", 80*time.Millisecond)
	m.ObserveResolution("none", "error", time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.resolutions.WithLabelValues("api", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.resolutions.WithLabelValues("none", "error")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP artofday_featured_resolutions_total Daily pick resolutions by source and result.
# TYPE artofday_featured_resolutions_total counter
artofday_featured_resolutions_total{result="error",source="none"} 1
artofday_featured_resolutions_total{result="ok",source="api"} 2
`), "artofday_featured_resolutions_total")
	require.NoError(t, err)
}

func TestNewFeaturedMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewFeaturedMetrics(reg)

	assert.Panics(t, func() { NewFeaturedMetrics(reg) })
}
