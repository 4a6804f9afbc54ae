// Package clients provides the instrumented HTTP client used to reach the
// artwork collection.
package clients

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCircuitOpen is returned without sending when the downstream is
	// considered unhealthy.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is used.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is a retryable response status that was still failing on
// the last attempt.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream returned %d %s", e.Code, http.StatusText(e.Code))
}

// StatusCode extracts the status of a StatusError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}

	return 0, false
}
