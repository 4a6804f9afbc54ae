// Package middleware provides the gin middleware of the HTTP adapter.
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

// ContextLogger stores logger in the request context so later middleware
// and handlers can enrich and use it through logging.FromContext.
func ContextLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}
