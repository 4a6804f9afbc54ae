// Package config loads service settings with koanf and checks them with
// validator before anything is wired.
package config

import "time"

// Defaults that other packages build on when no Config is at hand, such as
// tests and benchmarks. They match defaults.yaml.
const (
	DefaultViewportWidth      = 400.0
	DefaultDisplayHeight      = 250.0
	DefaultMaxHistoryDays     = 30
	DefaultHistoryConcurrency = 4
	DefaultRetainDays         = 7
)

// Config is the full service configuration. Keys follow the koanf tags.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Featured  FeaturedConfig  `koanf:"featured"  validate:"required"`
	Storage   StorageConfig   `koanf:"storage"   validate:"required"`
	Features  map[string]any  `koanf:"features"`
}

// AppConfig identifies the deployment.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig sizes the HTTP listener. RequestTimeout is the per-request
// budget; HealthTimeout bounds each readiness check.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	HealthTimeout   time.Duration `koanf:"health_timeout"   validate:"required,min=100ms"`
}

// LogConfig selects the slog level and output format.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig tees logs into a lumberjack rolling file.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig enables OTLP trace export.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig describes the gateway-supplied identity headers used by the
// selection endpoints.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	JWKSEndpoint  string `koanf:"jwks_endpoint"  validate:"required_if=Enabled true,omitempty,url"`
	Issuer        string `koanf:"issuer"         validate:"required_if=Enabled true"`
	Audience      string `koanf:"audience"       validate:"required_if=Enabled true"`
	ClaimsHeader  string `koanf:"claims_header"`
	RolesHeader   string `koanf:"roles_header"`
	ScopesHeader  string `koanf:"scopes_header"`
	SubjectHeader string `koanf:"subject_header"`
}

// ClientConfig tunes the HTTP client used for the collection API.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig bounds exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig sets when the circuit opens and how it recovers.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig sizes the idle connection pool.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// ServicesConfig lists downstream endpoints.
type ServicesConfig struct {
	Artic ServiceEndpointConfig `koanf:"artic" validate:"required"`
}

// ServiceEndpointConfig locates one downstream. UserAgent is sent as
// AIC-User-Agent.
type ServiceEndpointConfig struct {
	BaseURL   string `koanf:"base_url"   validate:"required,url"`
	Name      string `koanf:"name"       validate:"required"`
	UserAgent string `koanf:"user_agent"`
}

// FeaturedConfig controls how the artwork of the day is chosen and presented.
type FeaturedConfig struct {
	Timezone             string        `koanf:"timezone"               validate:"required,timezone"`
	DefaultViewportWidth float64       `koanf:"default_viewport_width" validate:"required,gt=0,lte=10000"`
	DefaultDisplayHeight float64       `koanf:"default_display_height" validate:"required,gt=0"`
	ImageBaseURL         string        `koanf:"image_base_url"         validate:"required,url"`
	FetchTimeout         time.Duration `koanf:"fetch_timeout"          validate:"required,min=100ms"`
	MaxHistoryDays       int           `koanf:"max_history_days"       validate:"required,min=1,max=365"`
	HistoryConcurrency   int           `koanf:"history_concurrency"    validate:"required,min=1,max=32"`
	RetainDays           int           `koanf:"retain_days"            validate:"required,min=1"`
	RetryAfter           time.Duration `koanf:"retry_after"`
	Prefetch             bool          `koanf:"prefetch"`
}

// StorageConfig selects and configures the archive backend.
type StorageConfig struct {
	Driver   string         `koanf:"driver"   validate:"required,oneof=memory postgres"`
	Postgres PostgresConfig `koanf:"postgres"`
}

// PostgresConfig configures the pgx pool used by the postgres archive.
type PostgresConfig struct {
	URL      string `koanf:"url"       validate:"omitempty,url"`
	MaxConns int32  `koanf:"max_conns" validate:"omitempty,min=1,max=200"`
	Migrate  bool   `koanf:"migrate"`
}
