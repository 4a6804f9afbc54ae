package telemetry

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/artofday/telemetry"

// unmatchedRoute labels requests that hit no registered route, keeping the
// route attribute bounded.
const unmatchedRoute = "unmatched"

// HTTPMetrics are the OpenTelemetry instruments of the HTTP server.
type HTTPMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewHTTPMetrics creates the instruments on the global meter provider.
func NewHTTPMetrics() (*HTTPMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the tracing and metrics handlers, in that order.
// Requests whose path starts with one of skipPrefixes, such as the /-/ probes,
// are neither traced nor measured.
//
//	engine.Use(telemetry.Middleware("artofday", "/-/")...)
func Middleware(serviceName string, skipPrefixes ...string) []gin.HandlerFunc {
	skip := func(path string) bool {
		return slices.ContainsFunc(skipPrefixes, func(p string) bool {
			return strings.HasPrefix(path, p)
		})
	}

	tracing := otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !skip(r.URL.Path)
	}))

	metrics, err := NewHTTPMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return []gin.HandlerFunc{tracing, func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		measure(c, metrics)
	}}
}

func measure(c *gin.Context, m *HTTPMetrics) {
	start := time.Now()
	ctx := c.Request.Context()

	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}

	if m != nil {
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		)

		m.activeRequests.Add(ctx, 1, attrs)
		defer m.activeRequests.Add(ctx, -1, attrs)
	}

	// Headers must be set before the handler writes the body.
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		c.Header("X-Trace-ID", sc.TraceID().String())
	}

	c.Next()

	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", c.Writer.Status()),
	)
	m.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.requestTotal.Add(ctx, 1, attrs)
}
