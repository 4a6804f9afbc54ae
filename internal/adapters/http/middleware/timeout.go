package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/adapters/http/dto"
)

// ErrRequestTimeout is the cancellation cause once a request outlives its
// budget.
var ErrRequestTimeout = errors.New("request budget exceeded")

// Timeout gives each request a budget of d. Handlers see it through the
// request context and normally answer themselves; a handler that returns
// past the budget without writing gets a 504. A d of zero or less sets no
// budget.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeoutCause(c.Request.Context(), d, ErrRequestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(context.Cause(ctx), ErrRequestTimeout) {
			return
		}

		dto.AbortWithCode(c, dto.ErrorCodeTimeout, "request timed out")
	}
}
