package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestIDMiddleware verifies both id middlewares reuse, generate and echo ids
// and expose them through gin and the request context.
func TestIDMiddleware(t *testing.T) {
	type idFns struct {
		handler gin.HandlerFunc
		header  string
		fromGin func(*gin.Context) string
		fromCtx func(context.Context) string
	}

	kinds := map[string]idFns{
		"request id":     {RequestID(), HeaderRequestID, GetRequestID, RequestIDFromContext},
		"correlation id": {CorrelationID(), HeaderCorrelationID, GetCorrelationID, CorrelationIDFromContext},
	}

	tests := []struct {
		name           string
		incoming       string
		expectReplaced bool
	}{
		{name: "generated when absent", incoming: "", expectReplaced: true},
		{name: "caller id reused", incoming: "req-123", expectReplaced: false},
		{name: "oversized id replaced", incoming: strings.Repeat("x", 129), expectReplaced: true},
		{name: "id with spaces replaced", incoming: "req 123\tinjected", expectReplaced: true},
	}

	for kind, fns := range kinds {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				var fromGin, fromCtx string

				router := gin.New()
				router.Use(fns.handler)
				router.GET("/test", func(c *gin.Context) {
					fromGin = fns.fromGin(c)
					fromCtx = fns.fromCtx(c.Request.Context())
					c.Status(http.StatusOK)
				})

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				if tt.incoming != "" {
					req.Header.Set(fns.header, tt.incoming)
				}

				router.ServeHTTP(w, req)

				require.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, fromGin, fromCtx)
				assert.Equal(t, fromGin, w.Header().Get(fns.header))

				if tt.expectReplaced {
					_, err := uuid.Parse(fromGin)
					assert.NoError(t, err)
				} else {
					assert.Equal(t, tt.incoming, fromGin)
				}
			})
		}
	}
}

// TestUsableID verifies which caller ids are kept.
func TestUsableID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"req-123", true},
		{"0b6f6e5c-5f0e-4d5b-9a51-1f2ad9c1f0aa", true},
		{strings.Repeat("x", maxIDLength), true},
		{"", false},
		{strings.Repeat("x", maxIDLength+1), false},
		{"a b", false},
		{"line\nbreak", false},
		{"caf\u00e9", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, usableID(tt.id))
		})
	}
}

func TestIDsFromContext_NotSet(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil ctx is tolerated
}

func TestIDsFromContext_Independent(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-1", CorrelationIDFromContext(ctx))
}

func TestGetIDFromContext_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextKeyRequestID, 42)

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
}
