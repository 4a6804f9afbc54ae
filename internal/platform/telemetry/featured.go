package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/artofday/internal/ports"
)

var _ ports.FeaturedMetrics = (*FeaturedMetrics)(nil)

// FeaturedMetrics exports daily pick resolutions to Prometheus.
type FeaturedMetrics struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewFeaturedMetrics registers the featured collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer, which backs /-/metrics.
func NewFeaturedMetrics(reg prometheus.Registerer) *FeaturedMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &FeaturedMetrics{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "artofday",
			Subsystem: "featured",
			Name:      "resolutions_total",
			Help:      "Daily pick resolutions by source and result.",
		}, []string{"source", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "artofday",
			Subsystem: "featured",
			Name:      "resolve_seconds",
			Help:      "Time taken to resolve a daily pick.",
			Buckets:   []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}
}

// ObserveResolution implements ports.FeaturedMetrics.
func (m *FeaturedMetrics) ObserveResolution(source, result string, took time.Duration) {
	m.resolutions.WithLabelValues(source, result).Inc()
	m.duration.WithLabelValues(source).Observe(took.Seconds())
}
