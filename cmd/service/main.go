// Command service serves the artwork of the day over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/adapters/clients/acl"
	"github.com/jsamuelsen/artofday/internal/adapters/fallback"
	"github.com/jsamuelsen/artofday/internal/adapters/flags"
	"github.com/jsamuelsen/artofday/internal/adapters/http"
	"github.com/jsamuelsen/artofday/internal/adapters/http/handlers"
	"github.com/jsamuelsen/artofday/internal/app"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
	"github.com/jsamuelsen/artofday/internal/platform/telemetry"
	"github.com/jsamuelsen/artofday/internal/ports"
)

// Build-time variables, injected via ldflags:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
	)

	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry(cfg.Server.HealthTimeout)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Artic.BaseURL,
		ServiceName: cfg.Services.Artic.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Headers:     userAgentHeader(cfg.Services.Artic.UserAgent),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	articClient := acl.NewArticClient(acl.ArticClientConfig{
		Client:      httpClient,
		ServiceName: cfg.Services.Artic.Name,
		Logger:      logger,
	})

	if err := healthRegistry.Register(articClient); err != nil {
		return fmt.Errorf("registering collection health check: %w", err)
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	if store.health != nil {
		if err := healthRegistry.Register(store.health); err != nil {
			return fmt.Errorf("registering storage health check: %w", err)
		}
	}

	catalog, err := fallback.Default()
	if err != nil {
		return fmt.Errorf("loading fallback catalog: %w", err)
	}

	location, err := time.LoadLocation(cfg.Featured.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	featured := app.NewFeaturedService(app.FeaturedServiceConfig{
		Client:   articClient,
		Archive:  store.archive,
		Fallback: catalog,
		Flags:    flags.NewStatic(cfg.Features, logger),
		Metrics:  telemetry.NewFeaturedMetrics(nil),
		Settings: app.FeaturedSettings{
			DefaultViewportWidth: cfg.Featured.DefaultViewportWidth,
			ImageBaseURL:         cfg.Featured.ImageBaseURL,
			MaxHistoryDays:       cfg.Featured.MaxHistoryDays,
			HistoryConcurrency:   cfg.Featured.HistoryConcurrency,
			RetainDays:           cfg.Featured.RetainDays,
			FetchTimeout:         cfg.Featured.FetchTimeout,
			RetryAfter:           cfg.Featured.RetryAfter,
		},
		Location: location,
		Logger:   logger,
	})
	defer featured.Close()

	if cfg.Featured.Prefetch {
		if err := featured.Warm(ctx, 1); err != nil {
			logger.Warn("prefetch failed", slog.Any("error", err))
		}
	}

	selection := app.NewSelectionService(app.SelectionServiceConfig{
		Store:  store.selections,
		Logger: logger,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:     logger,
		AuthConfig: &cfg.Auth,
		AppConfig:  &cfg.App,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo,
			handlers.WithFeaturedState(featured.State)),
		FeaturedHandler:  handlers.NewFeaturedHandler(featured, cfg.Featured.DefaultDisplayHeight),
		SelectionHandler: handlers.NewSelectionHandler(selection, &cfg.Auth),
		Timeout:          cfg.Server.RequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a signal or a server error, then drains
// in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// userAgentHeader identifies this service to the collection API, which asks
// clients to send AIC-User-Agent.
func userAgentHeader(agent string) nethttp.Header {
	if agent == "" {
		return nil
	}

	return nethttp.Header{"Aic-User-Agent": {agent}}
}
