package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/domain"
)

// ErrorResponse is the error body returned by the artwork API, for example
// {"status":404,"error":"Not found","detail":"The item you requested cannot be found."}.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// GetMessage prefers the detail text over the short error title.
func (e *ErrorResponse) GetMessage() string {
	if e.Detail != "" {
		return e.Detail
	}

	return e.Error
}

// ParseErrorResponse decodes an API error body. It returns nil for bodies
// that are empty, not JSON, or carry no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil || errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// failure describes how one upstream status is reported.
type failure struct {
	// message is used when the body carries none.
	message string

	// fixed ignores the body message.
	fixed bool

	wrap func(service, operation, message string) error
}

func unavailable(service, _, message string) error { return domain.NewUnavailableError(service, message) }
func invalid(_, _, message string) error { return domain.NewValidationError("", message) }
func forbidden(_, operation, message string) error { return domain.NewForbiddenError(operation, message) }
func conflict(service, _, message string) error { return domain.NewConflictError(service, message) }

var failures = map[int]failure{
	http.StatusBadRequest:          {message: "invalid request", wrap: invalid},
	http.StatusUnprocessableEntity: {wrap: invalid},
	http.StatusUnauthorized:        {message: "authentication required", fixed: true, wrap: forbidden},
	http.StatusForbidden:           {message: "access denied", wrap: forbidden},
	http.StatusConflict:            {message: "resource conflict", wrap: conflict},
	http.StatusTooManyRequests:     {message: "rate limit exceeded", fixed: true, wrap: unavailable},
	http.StatusServiceUnavailable:  {message: "service temporarily unavailable", wrap: unavailable},
}

// MapHTTPError turns a failed exchange into a domain error, or returns nil
// for a 2xx response. clientErr takes precedence and resp may then be nil.
// entityID names the missing thing on a 404.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	status := resp.StatusCode
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	if status == http.StatusNotFound {
		return domain.NewNotFoundError(serviceName, entityID)
	}

	f, ok := failures[status]
	if !ok {
		f = failure{wrap: invalid}
		if status >= http.StatusInternalServerError {
			f.wrap = unavailable
		}
	}

	message := f.message
	if message == "" {
		message = fmt.Sprintf("%s failed with status %d", operation, status)
	}

	if !f.fixed {
		if errResp := ParseErrorResponse(resp.Body); errResp != nil {
			message = errResp.GetMessage()
		}
	}

	return f.wrap(serviceName, operation, message)
}

// mapClientError reports failures that produced no usable response. All of
// them mean the downstream cannot serve right now.
func mapClientError(err error, serviceName, operation string) error {
	var message string

	switch code, ok := clients.StatusCode(err); {
	case errors.Is(err, clients.ErrCircuitOpen):
		message = "circuit breaker open during " + operation
	case ok && code == http.StatusTooManyRequests:
		message = "rate limit exceeded during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		message = "max retries exceeded during " + operation
	default:
		message = fmt.Sprintf("%s failed: %v", operation, err)
	}

	return domain.WrapUnavailable(serviceName, message, err)
}

// upstreamFault reports a call the downstream refused as Unavailable. The
// request was built by this adapter, so a 4xx is not the caller's fault.
// NotFound and Unavailable pass through unchanged.
func upstreamFault(service, reason string, err error) error {
	if domain.IsNotFound(err) || domain.IsUnavailable(err) {
		return err
	}

	return domain.WrapUnavailable(service, reason, err)
}
