package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request id.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries the id of a transaction spanning services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key of the request id.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key of the correlation id.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength caps caller-supplied ids before they reach logs and headers.
const maxIDLength = 128

type idKey struct{ name string }

var (
	requestIDKey     = idKey{"request_id"}
	correlationIDKey = idKey{"correlation_id"}
)

// idHeader describes one id that travels in a header.
type idHeader struct {
	header string
	ginKey string
	ctxKey idKey
	logAs  func(context.Context, string) context.Context
}

var (
	requestIDHeader     = idHeader{HeaderRequestID, ContextKeyRequestID, requestIDKey, logging.WithRequestID}
	correlationIDHeader = idHeader{HeaderCorrelationID, ContextKeyCorrelationID, correlationIDKey, logging.WithCorrelationID}
)

// handler reuses a usable caller id or generates a UUID, echoes it in the
// response, and stores it in the gin context, the request context and the
// request logger.
func (h idHeader) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.header)
		if !usableID(id) {
			id = uuid.NewString()
		}

		c.Set(h.ginKey, id)
		c.Header(h.header, id)

		ctx := context.WithValue(c.Request.Context(), h.ctxKey, id)
		c.Request = c.Request.WithContext(h.logAs(ctx, id))

		c.Next()
	}
}

// usableID accepts non-empty printable ASCII ids up to maxIDLength.
func usableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}

// RequestID extracts or generates the request id. The collection client
// forwards it downstream.
func RequestID() gin.HandlerFunc {
	return requestIDHeader.handler()
}

// CorrelationID propagates the upstream correlation id, or starts one.
func CorrelationID() gin.HandlerFunc {
	return correlationIDHeader.handler()
}

// GetRequestID returns the request id, or "" if RequestID did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation id, or "" if CorrelationID did not run.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// RequestIDFromContext returns the request id stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the correlation id stored by CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

// ContextWithRequestID stores a request id in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores a correlation id in ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
