package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/artofday/internal/adapters/http/dto"
	"github.com/jsamuelsen/artofday/internal/adapters/http/handlers"
	"github.com/jsamuelsen/artofday/internal/adapters/storage/memory"
	"github.com/jsamuelsen/artofday/internal/app"
	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/mocks"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
	"github.com/jsamuelsen/artofday/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig(port int, maxBody int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           port,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxBody,
	}
}

// setupTestRouter wires every handler over a mock collection client and
// in-memory stores, as main does.
func setupTestRouter(t *testing.T, authEnabled bool, setupMock func(*mocks.MockCandidateClient)) *gin.Engine {
	t.Helper()

	client := mocks.NewMockCandidateClient(t)
	if setupMock != nil {
		setupMock(client)
	}

	featured := app.NewFeaturedService(app.FeaturedServiceConfig{
		Client:  client,
		Archive: memory.NewArchive(),
		Now: func() time.Time {
			return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
		Logger: discardLogger(),
	})
	t.Cleanup(featured.Close)

	selection := app.NewSelectionService(app.SelectionServiceConfig{
		Store:  memory.NewSelectionStore(),
		Logger: discardLogger(),
	})

	authCfg := &config.AuthConfig{Enabled: authEnabled}

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:           discardLogger(),
		AuthConfig:       authCfg,
		AppConfig:        &config.AppConfig{Name: "artofday", Environment: "test", Version: "1.0.0"},
		HealthHandler:    handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.BuildInfo{Version: "1.0.0"}),
		FeaturedHandler:  handlers.NewFeaturedHandler(featured, 250),
		SelectionHandler: handlers.NewSelectionHandler(selection, authCfg),
		Timeout:          5 * time.Second,
	})

	return engine
}

func do(engine *gin.Engine, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	engine.ServeHTTP(w, req)

	return w
}

// TestSetupRouter_Routes verifies every route is registered.
func TestSetupRouter_Routes(t *testing.T) {
	engine := setupTestRouter(t, false, nil)

	routeMap := make(map[string]bool)
	for _, r := range engine.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /api/v1/featured",
		"GET /api/v1/featured/state",
		"GET /api/v1/featured/history",
		"GET /api/v1/featured/:day",
		"POST /api/v1/featured/warm",
		"GET /api/v1/selection",
		"PUT /api/v1/selection",
		"DELETE /api/v1/selection",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

// TestSetupRouter_Featured verifies a request through the whole chain.
func TestSetupRouter_Featured(t *testing.T) {
	engine := setupTestRouter(t, false, func(m *mocks.MockCandidateClient) {
		m.EXPECT().FetchCandidate(mock.Anything, 315).Return(&domain.Candidate{
			ID:      27992,
			Title:   "A Sunday on La Grande Jatte",
			ImageID: "2d484387-2509-5e8e-2c43-22f9981972eb",
		}, nil)
	})

	w := do(engine, http.MethodGet, "/api/v1/featured", nil, map[string]string{"X-Request-ID": "req-1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	var resp dto.ArtworkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 27992, resp.ID)
	assert.Nil(t, resp.DisplayHeight)
	assert.InDelta(t, 250, resp.DefaultDisplayHeight, 0.001)
}

// TestSetupRouter_WarmRequiresGrant verifies the warm guard.
func TestSetupRouter_WarmRequiresGrant(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{name: "anonymous", expectedStatus: http.StatusForbidden},
		{
			name:           "viewer without grant",
			headers:        map[string]string{"X-User-ID": "alice", "X-User-Roles": "viewer"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin role",
			headers:        map[string]string{"X-User-ID": "ops", "X-User-Roles": "viewer, admin"},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "warm scope",
			headers:        map[string]string{"X-User-ID": "cron", "X-User-Scopes": "featured:read featured:warm"},
			expectedStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupTestRouter(t, false, func(m *mocks.MockCandidateClient) {
				m.EXPECT().FetchCandidate(mock.Anything, mock.Anything).
					Return(nil, domain.NewUnavailableError("artic", "offline")).Maybe()
			})

			w := do(engine, http.MethodPost, "/api/v1/featured/warm", nil, tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// TestSetupRouter_SelectionAuth verifies anonymous viewers are only refused
// when auth is enabled.
func TestSetupRouter_SelectionAuth(t *testing.T) {
	t.Run("auth disabled serves anonymous", func(t *testing.T) {
		engine := setupTestRouter(t, false, nil)

		w := do(engine, http.MethodGet, "/api/v1/selection", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"viewer":"anonymous","mode":"explore"}`, w.Body.String())
	})

	t.Run("auth enabled refuses anonymous", func(t *testing.T) {
		engine := setupTestRouter(t, true, nil)

		w := do(engine, http.MethodGet, "/api/v1/selection", nil, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("open then close keeps the artwork", func(t *testing.T) {
		engine := setupTestRouter(t, true, nil)
		headers := map[string]string{"X-User-ID": "alice", "Content-Type": "application/json"}

		w := do(engine, http.MethodPut, "/api/v1/selection", strings.NewReader(`{"artworkId":28560}`), headers)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(engine, http.MethodDelete, "/api/v1/selection", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SelectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "explore", resp.Mode)
		assert.Equal(t, 28560, resp.ArtworkID)
	})
}

// TestSetupRouter_RecoversPanics verifies panics become the error envelope.
func TestSetupRouter_RecoversPanics(t *testing.T) {
	engine := setupTestRouter(t, false, nil)
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := do(engine, http.MethodGet, "/boom", nil, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
}

// TestSetupRouter_NilHandlers verifies optional handlers may be left out.
func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{
			Logger:    discardLogger(),
			AppConfig: &config.AppConfig{Name: "artofday"},
		})
	})

	w := do(engine, http.MethodGet, "/api/v1/featured", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestServerAddr verifies host and port formatting.
func TestServerAddr(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		port         int
		expectedAddr string
	}{
		{name: "ipv4", host: "127.0.0.1", port: 8080, expectedAddr: "127.0.0.1:8080"},
		{name: "all interfaces", host: "0.0.0.0", port: 3000, expectedAddr: "0.0.0.0:3000"},
		{name: "ipv6", host: "::1", port: 8080, expectedAddr: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig(tt.port, 1<<20)
			cfg.Host = tt.host

			srv := New(cfg, discardLogger())

			assert.Equal(t, tt.expectedAddr, srv.Addr())
			assert.Same(t, cfg, srv.Config())
			assert.NotNil(t, srv.Engine())
		})
	}
}

// TestServerStartShutdown verifies the server answers on its bound port and
// the error channel closes after shutdown.
func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(0, 1<<20), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		assert.NotNil(t, logging.FromContextOr(c.Request.Context(), nil))
		c.String(http.StatusOK, "pong")
	})

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

// TestServerStart_AddressInUse verifies a bind failure is returned at once.
func TestServerStart_AddressInUse(t *testing.T) {
	first := New(testServerConfig(0, 1<<20), discardLogger())
	_, err := first.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	cfg := testServerConfig(0, 1<<20)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	_, err = New(cfg, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

// TestMaxBodySize verifies bodies over the limit cannot be read.
func TestMaxBodySize(t *testing.T) {
	srv := New(testServerConfig(0, 100), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name           string
		size           int
		expectedStatus int
	}{
		{name: "under limit", size: 50, expectedStatus: http.StatusOK},
		{name: "over limit", size: 200, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv.Engine(), http.MethodPost, "/echo", bytes.NewReader(make([]byte, tt.size)), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
