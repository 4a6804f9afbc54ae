package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "artofday",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1 << 20,
			RequestTimeout:  30 * time.Second,
			HealthTimeout:   2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Services: ServicesConfig{
			Artic: ServiceEndpointConfig{
				BaseURL:   "https://api.artic.edu",
				Name:      "artic-api",
				UserAgent: "artofday (ops@example.com)",
			},
		},
		Featured: FeaturedConfig{
			Timezone:             "UTC",
			DefaultViewportWidth: 400,
			DefaultDisplayHeight: 250,
			ImageBaseURL:         "https://www.artic.edu",
			FetchTimeout:         20 * time.Second,
			MaxHistoryDays:       30,
			HistoryConcurrency:   4,
			RetainDays:           7,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
	}
}

// TestConfig_Validate_Valid verifies the baseline and the loaded defaults pass.
func TestConfig_Validate_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, loaded.Validate())
}

// TestConfig_Validate_Fields verifies field constraints are reported by
// their configuration keys.
func TestConfig_Validate_Fields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"unknown environment", func(c *Config) { c.App.Environment = "staging" }, "app.environment must be one of: local, dev, qa, prod, test"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port is required"},
		{"missing host", func(c *Config) { c.Server.Host = "" }, "server.host is required"},
		{"short health timeout", func(c *Config) { c.Server.HealthTimeout = time.Millisecond }, "server.health_timeout must be at least 100ms"},
		{"log level case", func(c *Config) { c.Log.Level = "INFO" }, "log.level must be one of"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format must be one of: json, text, pretty"},
		{"log file path", func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} }, "log.file.path is required when log.file.enabled is true"},
		{"log file size", func(c *Config) { c.Log.File.MaxSizeMB = 2048 }, "log.file.max_size must be at most 1024"},
		{"telemetry endpoint", func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "artofday"} }, "telemetry.endpoint is required when telemetry.enabled is true"},
		{"telemetry endpoint url", func(c *Config) {
			c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "artofday", Endpoint: "collector"}
		}, "telemetry.endpoint must be a valid URL"},
		{"sampling rate", func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, "telemetry.sampling_rate must be at most 1"},
		{"auth issuer", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, JWKSEndpoint: "https://id.example.com/jwks", Audience: "artofday"}
		}, "auth.issuer is required when auth.enabled is true"},
		{"retry attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 11 }, "client.retry.max_attempts must be at most 10"},
		{"retry multiplier", func(c *Config) { c.Client.Retry.Multiplier = 1.0 }, "client.retry.multiplier must be at least 1.1"},
		{"jitter", func(c *Config) { c.Client.Retry.JitterFactor = 2 }, "client.retry.jitter_factor must be at most 1"},
		{"breaker timeout", func(c *Config) { c.Client.CircuitBreaker.Timeout = time.Millisecond }, "client.circuit_breaker.timeout must be at least 1s"},
		{"idle conns", func(c *Config) { c.Client.Transport.MaxIdleConns = 0 }, "client.transport.max_idle_conns is required"},
		{"collection url", func(c *Config) { c.Services.Artic.BaseURL = "api.artic.edu" }, "services.artic.base_url must be a valid URL"},
		{"timezone", func(c *Config) { c.Featured.Timezone = "Mars/Olympus" }, "featured.timezone must be an IANA time zone name"},
		{"viewport width", func(c *Config) { c.Featured.DefaultViewportWidth = -1 }, "featured.default_viewport_width must be greater than 0"},
		{"viewport too wide", func(c *Config) { c.Featured.DefaultViewportWidth = 20000 }, "featured.default_viewport_width must be at most 10000"},
		{"history", func(c *Config) { c.Featured.MaxHistoryDays = 400 }, "featured.max_history_days must be at most 365"},
		{"fetch timeout", func(c *Config) { c.Featured.FetchTimeout = time.Millisecond }, "featured.fetch_timeout must be at least 100ms"},
		{"image base", func(c *Config) { c.Featured.ImageBaseURL = "not a url" }, "featured.image_base_url must be a valid URL"},
		{"storage driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver must be one of: memory, postgres"},
		{"pool size", func(c *Config) { c.Storage.Postgres.MaxConns = 500 }, "storage.postgres.max_conns must be at most 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Problems)
			assert.Contains(t, verr.Problems[0], tt.problem)
		})
	}
}

// TestConfig_Validate_CrossChecks verifies rules spanning several fields.
func TestConfig_Validate_CrossChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.Storage.Driver = "postgres" },
			problem: "storage.postgres.url is required when storage.driver is postgres",
		},
		{
			name: "retry ceiling below start",
			mutate: func(c *Config) {
				c.Client.Retry.InitialInterval = time.Second
				c.Client.Retry.MaxInterval = 500 * time.Millisecond
			},
			problem: "client.retry.max_interval must not be below client.retry.initial_interval",
		},
		{
			name:    "retain beyond history",
			mutate:  func(c *Config) { c.Featured.RetainDays = 45 },
			problem: "featured.retain_days must not exceed featured.max_history_days",
		},
		{
			name:    "request outlives write",
			mutate:  func(c *Config) { c.Server.RequestTimeout = time.Minute },
			problem: "server.request_timeout must not exceed server.write_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			var verr *ValidationError
			require.ErrorAs(t, cfg.Validate(), &verr)
			assert.Equal(t, []string{tt.problem}, verr.Problems)
		})
	}
}

// TestConfig_Validate_Accepted verifies optional settings that are valid.
func TestConfig_Validate_Accepted(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"postgres with url", func(c *Config) {
			c.Storage = StorageConfig{Driver: "postgres", Postgres: PostgresConfig{URL: "postgres://localhost:5432/artofday", MaxConns: 5}}
		}},
		{"named timezone", func(c *Config) { c.Featured.Timezone = "America/Chicago" }},
		{"log file", func(c *Config) { c.Log.File = LogFileConfig{Enabled: true, Path: "/var/log/artofday.log", MaxSizeMB: 10} }},
		{"telemetry", func(c *Config) {
			c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "http://collector:4318", ServiceName: "artofday", SamplingRate: 0.1}
		}},
		{"auth", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, JWKSEndpoint: "https://id.example.com/jwks", Issuer: "https://id.example.com", Audience: "artofday"}
		}},
		{"every environment", func(c *Config) { c.App.Environment = "prod" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			assert.NoError(t, cfg.Validate())
		})
	}
}

// TestConfig_Validate_ReportsAll verifies every problem is listed at once.
func TestConfig_Validate_ReportsAll(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Server.Port = 70000
	cfg.Storage.Driver = "postgres"

	err := cfg.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), "config validation failed:\n  ")
	assert.Contains(t, err.Error(), "app.name is required")
	assert.Contains(t, err.Error(), "server.port must be at most 65535")
	assert.Contains(t, err.Error(), "storage.postgres.url")
}

// TestKeyPath verifies the root type is dropped.
func TestKeyPath(t *testing.T) {
	assert.Equal(t, "server.port", keyPath("Config.server.port"))
	assert.Equal(t, "client.retry.max_attempts", keyPath("Config.client.retry.max_attempts"))
	assert.Equal(t, "Config", keyPath("Config"))
}

// TestCondition verifies required_if params are rendered as sibling keys.
func TestCondition(t *testing.T) {
	assert.Equal(t, "log.file.enabled is true", condition("log.file.path", "Enabled true"))
	assert.Equal(t, "enabled is true", condition("path", "Enabled true"))
	assert.Equal(t, "Enabled", condition("log.file.path", "Enabled"))
}
