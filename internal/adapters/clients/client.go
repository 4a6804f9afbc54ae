package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/artofday/internal/adapters/http/middleware"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/artofday/internal/adapters/clients"

	defaultTimeout = 30 * time.Second

	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second

	// drainLimit bounds how much of a discarded body is read to reuse the connection.
	drainLimit = 64 << 10
)

// Config configures a Client.
type Config struct {
	// BaseURL is prefixed to paths passed to Get.
	BaseURL string

	// ServiceName names the downstream in logs, spans and metrics. Required.
	ServiceName string

	// Timeout bounds a single attempt. Backoff between attempts is not included.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Headers are added to every outgoing request.
	Headers http.Header

	Logger *slog.Logger
}

// Client sends requests to one downstream through a circuit breaker,
// retrying transient failures with jittered exponential backoff. Request
// and correlation ids and the trace context travel with every attempt.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	headers     http.Header

	retry   retryPolicy
	breaker *CircuitBreaker

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics clientMetrics
}

// clientMetrics are the OpenTelemetry instruments of a Client.
type clientMetrics struct {
	duration    metric.Float64Histogram
	requests    metric.Int64Counter
	transitions metric.Int64Counter
}

func newClientMetrics(meter metric.Meter) (clientMetrics, error) {
	var (
		m   clientMetrics
		err error
	)

	m.duration, err = meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of downstream requests including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return m, fmt.Errorf("creating duration metric: %w", err)
	}

	m.requests, err = meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Downstream requests by result"),
	)
	if err != nil {
		return m, fmt.Errorf("creating request counter: %w", err)
	}

	m.transitions, err = meter.Int64Counter("http.client.circuit.transitions",
		metric.WithDescription("Circuit breaker state changes"),
	)
	if err != nil {
		return m, fmt.Errorf("creating transition counter: %w", err)
	}

	return m, nil
}

// New creates a Client. Zero Timeout and transport limits fall back to defaults.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := newClientMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}

	c := &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		headers:     cfg.Headers.Clone(),
		retry:       newRetryPolicy(cfg.Retry),
		breaker: NewCircuitBreaker(CircuitBreakerConfig{
			MaxFailures:   cfg.Circuit.MaxFailures,
			Timeout:       cfg.Circuit.Timeout,
			HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
		}),
		logger: logger.With(
			slog.String("component", "clients.Client"),
			slog.String("downstream", cfg.ServiceName),
		),
		tracer:  otel.Tracer(instrumentationName),
		metrics: metrics,
	}

	c.breaker.OnStateChange(c.circuitChanged)

	return c, nil
}

func newTransport(tc config.TransportConfig) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        tc.MaxIdleConns,
		MaxIdleConnsPerHost: tc.MaxIdleConnsPerHost,
		IdleConnTimeout:     tc.IdleConnTimeout,
	}

	if t.MaxIdleConns <= 0 {
		t.MaxIdleConns = transportMaxIdleConns
	}

	if t.MaxIdleConnsPerHost <= 0 {
		t.MaxIdleConnsPerHost = transportMaxIdleConnsPerHost
	}

	if t.IdleConnTimeout <= 0 {
		t.IdleConnTimeout = transportIdleConnTimeout
	}

	return t
}

func (c *Client) circuitChanged(t Transition) {
	c.logger.Warn("circuit breaker state changed",
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()),
	)

	c.metrics.transitions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("peer.service", c.serviceName),
		attribute.String("to", t.To.String()),
	))
}

// Do sends req. Any response that is not retried is returned to the caller,
// who must close its body. A request whose body cannot be rewound through
// GetBody is sent once.
//
// A caller cancelling ctx neither counts against the circuit nor for it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.breaker.Allow() {
		c.record(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.WarnContext(ctx, "request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	resp, err := c.send(ctx, req, logger)
	took := time.Since(start)

	switch {
	case err == nil:
		c.breaker.RecordSuccess()
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

		if resp.StatusCode >= http.StatusBadRequest {
			span.SetStatus(codes.Error, resp.Status)
		}

		c.record(ctx, req.Method, resp.StatusCode, took, fmt.Sprintf("%dxx", resp.StatusCode/100))
		logger.DebugContext(ctx, "request completed",
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", took),
		)

		return resp, nil

	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		c.breaker.Release()
		c.record(ctx, req.Method, 0, took, "canceled")
		logger.DebugContext(ctx, "request canceled", slog.Duration("duration", took))

		return nil, err

	default:
		c.breaker.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, req.Method, 0, took, "error")
		logger.ErrorContext(ctx, "request failed",
			slog.Duration("duration", took),
			slog.Any("error", err),
		)

		return nil, err
	}
}

// send runs the attempts. A retryable failure on the last attempt is
// wrapped in ErrMaxRetriesExceeded.
func (c *Client) send(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	attempts := c.retry.attempts(req)

	var (
		lastErr error
		hint    time.Duration
	)

	for n := range attempts {
		if n > 0 {
			wait := max(c.retry.backoff(n-1), hint)
			logger.DebugContext(ctx, "retrying request",
				slog.Int("attempt", n+1),
				slog.Duration("wait", wait),
				slog.Any("cause", lastErr),
			)

			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		attempt, err := c.decorate(ctx, req, n)
		if err != nil {
			return nil, err
		}

		logging.Trace(ctx, logger, "downstream attempt",
			slog.Int("attempt", n+1),
			slog.String("query", req.URL.RawQuery),
		)

		resp, err := c.http.Do(attempt)

		retry, wait, cause := c.retry.classify(resp, err)
		if !retry {
			return resp, err
		}

		if resp != nil {
			discard(resp)
		}

		lastErr, hint = cause, wait
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempts, lastErr)
}

// decorate builds attempt n of req with ids, configured headers and the
// trace context.
func (c *Client) decorate(ctx context.Context, req *http.Request, n int) (*http.Request, error) {
	out := req.Clone(ctx)

	if n > 0 && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewinding request body: %w", err)
		}

		out.Body = body
	}

	if id := middleware.RequestIDFromContext(ctx); id != "" {
		out.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		out.Header.Set(middleware.HeaderCorrelationID, id)
	}

	for name, values := range c.headers {
		out.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	return out, nil
}

// Get sends a GET for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// CircuitState returns the breaker state.
func (c *Client) CircuitState() State {
	return c.breaker.State()
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) record(ctx context.Context, method string, status int, took time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	c.metrics.duration.Record(ctx, took.Seconds(), set)
	c.metrics.requests.Add(ctx, 1, set)
}

// discard drains and closes a response that will not be returned.
func discard(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
	_ = resp.Body.Close()
}
