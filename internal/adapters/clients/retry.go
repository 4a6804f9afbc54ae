package clients

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/artofday/internal/platform/config"
)

const (
	// defaultJitterFactor is used when the retry config sets none.
	defaultJitterFactor = 0.25

	// headerRetryAfter is honoured on 429 and 503 responses.
	headerRetryAfter = "Retry-After"
)

// retryPolicy decides whether an attempt is repeated and how long to wait.
type retryPolicy struct {
	maxAttempts int
	initial     time.Duration
	ceiling     time.Duration
	multiplier  float64
	jitter      float64

	// rand returns a value in [0,1). now is used for HTTP-date Retry-After values.
	rand func() float64
	now  func() time.Time
}

func newRetryPolicy(rc config.RetryConfig) retryPolicy {
	p := retryPolicy{
		maxAttempts: max(rc.MaxAttempts, 1),
		initial:     rc.InitialInterval,
		ceiling:     rc.MaxInterval,
		multiplier:  rc.Multiplier,
		jitter:      rc.JitterFactor,
		rand:        rand.Float64, //nolint:gosec // jitter only
		now:         time.Now,
	}

	if p.jitter <= 0 {
		p.jitter = defaultJitterFactor
	}

	if p.multiplier < 1 {
		p.multiplier = 1
	}

	if p.ceiling <= 0 {
		p.ceiling = p.initial
	}

	return p
}

// attempts is the number of tries allowed for req. A body that cannot be
// rewound allows only one.
func (p retryPolicy) attempts(req *http.Request) int {
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return 1
	}

	return p.maxAttempts
}

// backoff is the wait before retry number n, counting from zero:
// initial*multiplier^n capped at the ceiling, then spread by ±jitter.
func (p retryPolicy) backoff(n int) time.Duration {
	d := math.Min(float64(p.initial)*math.Pow(p.multiplier, float64(n)), float64(p.ceiling))
	d += d * p.jitter * (p.rand()*2 - 1)

	return time.Duration(d)
}

// classify inspects one attempt. When retry is true, cause describes the
// failure and hint is the server's requested delay, if any.
func (p retryPolicy) classify(resp *http.Response, err error) (retry bool, hint time.Duration, cause error) {
	if err != nil {
		return isRetryableError(err), 0, err
	}

	if !retryableStatus(resp.StatusCode) {
		return false, 0, nil
	}

	return true, p.retryAfter(resp.Header.Get(headerRetryAfter)), &StatusError{Code: resp.StatusCode}
}

// retryAfter parses a Retry-After value in seconds or as an HTTP date.
// The result is never negative and never above the ceiling.
func (p retryPolicy) retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}

	var d time.Duration

	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(p.now())
	}

	return min(max(d, 0), p.ceiling)
}

// retryableStatus reports statuses worth repeating. 501 means the request
// will never succeed.
func retryableStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}

	return code >= http.StatusInternalServerError && code != http.StatusNotImplemented
}

// isRetryableError reports transport failures worth repeating: timeouts and
// connection errors. Context errors are final.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
