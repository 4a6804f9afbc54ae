package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/adapters/http/handlers"
	"github.com/jsamuelsen/artofday/internal/adapters/http/middleware"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/platform/telemetry"
)

const (
	// RoleAdmin may trigger warming.
	RoleAdmin = "admin"

	// ScopeFeaturedWarm grants POST /featured/warm to service accounts.
	ScopeFeaturedWarm = "featured:warm"
)

// RouterConfig contains what SetupRouter wires.
type RouterConfig struct {
	Logger     *slog.Logger
	AuthConfig *config.AuthConfig
	AppConfig  *config.AppConfig

	HealthHandler    *handlers.HealthHandler
	FeaturedHandler  *handlers.FeaturedHandler
	SelectionHandler *handlers.SelectionHandler

	// Timeout bounds /api/v1 requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter installs middleware and routes. Middleware order:
//  1. Recovery
//  2. ContextLogger, so later steps enrich one logger
//  3. RequestID and CorrelationID
//  4. OpenTelemetry tracing and metrics (probes excluded)
//  5. Logging (probes excluded)
//  6. IdentifyViewer, for flag targeting
//
// Probes live under /-/ without timeout; the API under /api/v1.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name, "/-/")...)
	engine.Use(
		middleware.Logging(cfg.Logger),
		middleware.IdentifyViewer(cfg.AuthConfig),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.FeaturedHandler != nil {
		cfg.FeaturedHandler.RegisterFeaturedRoutes(rg, middleware.RequireAny(cfg.AuthConfig,
			func(c *middleware.Claims) bool { return c.HasRole(RoleAdmin) },
			func(c *middleware.Claims) bool { return c.HasScope(ScopeFeaturedWarm) },
		))
	}

	if cfg.SelectionHandler != nil {
		var guards []gin.HandlerFunc
		if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
			guards = append(guards, middleware.RequireAuth(cfg.AuthConfig))
		}

		cfg.SelectionHandler.RegisterSelectionRoutes(rg, guards...)
	}
}
