package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigs creates dir/<name>.yaml for each entry and returns dir.
func writeConfigs(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o600))
	}

	return dir
}

// TestLoadDir_Defaults verifies the built-in defaults without any files.
func TestLoadDir_Defaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, AppConfig{Name: "artofday", Version: "dev", Environment: "local"}, cfg.App)
	assert.Equal(t, ServerConfig{
		Port:            8080,
		Host:            "0.0.0.0",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxRequestSize:  1 << 20,
		RequestTimeout:  30 * time.Second,
		HealthTimeout:   2 * time.Second,
	}, cfg.Server)
	assert.Equal(t, LogConfig{
		Level:  "info",
		Format: "json",
		File: LogFileConfig{
			Path:       "./logs/artofday.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}, cfg.Log)
	assert.Equal(t, ClientConfig{
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.25,
		},
		CircuitBreaker: CircuitBreakerConfig{MaxFailures: 5, Timeout: 30 * time.Second, HalfOpenLimit: 3},
		Transport:      TransportConfig{MaxIdleConns: 100, MaxIdleConnsPerHost: 10, IdleConnTimeout: 90 * time.Second},
	}, cfg.Client)
	assert.Equal(t, "X-User-ID", cfg.Auth.SubjectHeader)
	assert.Equal(t, "X-User-Claims", cfg.Auth.ClaimsHeader)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.InDelta(t, 1.0, cfg.Telemetry.SamplingRate, 0)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.EqualValues(t, 10, cfg.Storage.Postgres.MaxConns)
	assert.Equal(t, true, cfg.Features["featured-fallback"])
	assert.Equal(t, false, cfg.Features["featured-html-description"])

	require.NoError(t, cfg.Validate())
}

// TestLoadDir_FeaturedDefaults verifies defaults.yaml agrees with the
// exported constants.
func TestLoadDir_FeaturedDefaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, FeaturedConfig{
		Timezone:             "UTC",
		DefaultViewportWidth: DefaultViewportWidth,
		DefaultDisplayHeight: DefaultDisplayHeight,
		ImageBaseURL:         "https://www.artic.edu",
		FetchTimeout:         20 * time.Second,
		MaxHistoryDays:       DefaultMaxHistoryDays,
		HistoryConcurrency:   DefaultHistoryConcurrency,
		RetainDays:           DefaultRetainDays,
		RetryAfter:           30 * time.Second,
		Prefetch:             true,
	}, cfg.Featured)
	assert.Equal(t, "https://api.artic.edu", cfg.Services.Artic.BaseURL)
}

// TestLoadDir_Derived verifies keys left empty are filled from others, and
// explicit values are kept.
func TestLoadDir_Derived(t *testing.T) {
	t.Run("derived", func(t *testing.T) {
		dir := writeConfigs(t, map[string]string{"base": "app:\n  name: gallery\n  version: 2.1.0\n"})

		cfg, err := LoadDir(dir, "")
		require.NoError(t, err)

		assert.Equal(t, "gallery", cfg.Telemetry.ServiceName)
		assert.Equal(t, "gallery/2.1.0", cfg.Services.Artic.UserAgent)
	})

	t.Run("explicit", func(t *testing.T) {
		dir := writeConfigs(t, map[string]string{
			"base": "telemetry:\n  service_name: collector-name\nservices:\n  artic:\n    user_agent: ops@example.com\n",
		})

		cfg, err := LoadDir(dir, "")
		require.NoError(t, err)

		assert.Equal(t, "collector-name", cfg.Telemetry.ServiceName)
		assert.Equal(t, "ops@example.com", cfg.Services.Artic.UserAgent)
	})
}

// TestLoadDir_Layers verifies profile beats base and environment beats both.
func TestLoadDir_Layers(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base":  "server:\n  port: 9000\nlog:\n  level: warn\n  format: text\n",
		"local": "log:\n  level: debug\n",
	})
	t.Setenv("APP_LOG_FORMAT", "pretty")

	cfg, err := LoadDir(dir, "local")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
}

// TestLoadDir_MissingProfile verifies an absent profile file is skipped.
func TestLoadDir_MissingProfile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "artofday", cfg.App.Name)
}

// TestLoadDir_MalformedFile verifies a parse failure names the layer.
func TestLoadDir_MalformedFile(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"qa": "server: [unclosed\n"})

	_, err := LoadDir(dir, "qa")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading qa config")
}

// TestLoad_Env verifies APP_ variables, including keys with underscores and
// booleans.
func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_TELEMETRY_ENABLED", "true")
	t.Setenv("APP_FEATURED_FETCH_TIMEOUT", "5s")
	t.Setenv("APP_FEATURED_DEFAULT_VIEWPORT_WIDTH", "1200")
	t.Setenv("APP_STORAGE_POSTGRES_URL", "postgres://db:5432/artofday")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Featured.FetchTimeout)
	assert.InDelta(t, 1200.0, cfg.Featured.DefaultViewportWidth, 0)
	assert.Equal(t, "postgres://db:5432/artofday", cfg.Storage.Postgres.URL)
}

// TestEnvKeyMapper verifies known keys keep their underscores.
func TestEnvKeyMapper(t *testing.T) {
	mapper := envKeyMapper([]string{"server.port", "featured.max_history_days"})

	tests := []struct {
		env  string
		want string
	}{
		{"APP_SERVER_PORT", "server.port"},
		{"APP_FEATURED_MAX_HISTORY_DAYS", "featured.max_history_days"},
		{"APP_UNKNOWN_NESTED_KEY", "unknown.nested.key"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper(tt.env))
		})
	}
}
