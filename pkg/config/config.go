package config

import "time"

// Config is the root configuration structure for the relay.
// It contains all configuration sections for the HTTP server, the two
// upstream integrations, rate limiting, telemetry, and the audit log.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and the CORS policy.
	Server ServerConfig `yaml:"server"`

	// Upstreams contains configuration for the LastFM and Discord
	// integrations. Credentials are validated lazily per request, not at
	// startup, so the server boots without them.
	Upstreams UpstreamsConfig `yaml:"upstreams"`

	// Limits contains rate limiter configuration for the LastFM-scoped and
	// global limiters.
	Limits LimitsConfig `yaml:"limits"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Audit contains configuration for the request audit log.
	Audit AuditConfig `yaml:"audit"`

	// Development enables diagnostic details in error responses.
	// Never enable in production: upstream error text may leak internals.
	Development bool `yaml:"development"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "127.0.0.1:3001"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Default: 60s (must exceed RequestTimeout so the pipeline's
	// own 408 can still be written).
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RequestTimeout bounds the request pipeline: when it expires before a
	// response has been written, the client receives a 408. Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// MaxHeaderBytes limits request header size. Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes limits request body size; larger payloads receive a
	// 413. Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins. Use ["*"] to allow all
	// origins. Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of headers exposed to browsers.
	// Default: ["X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache lifetime in seconds. Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed.
	// Default: false
	AllowCredentials bool `yaml:"allow_credentials"`
}

// UpstreamsConfig contains configuration for both upstream integrations.
type UpstreamsConfig struct {
	// LastFM contains the LastFM API configuration.
	LastFM LastFMConfig `yaml:"lastfm"`

	// Discord contains the Discord API configuration.
	Discord DiscordConfig `yaml:"discord"`
}

// LastFMConfig contains configuration for the LastFM upstream.
type LastFMConfig struct {
	// BaseURL overrides the API endpoint. Default: the public endpoint.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates against the LastFM API.
	// Typically set through the LASTFM_API_KEY environment variable.
	APIKey string `yaml:"api_key"`

	// Username is the account whose listening data is served.
	// Typically set through DEFAULT_LASTFM_USERNAME.
	Username string `yaml:"username"`

	// Timeout is the per-request timeout. Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// DiscordConfig contains configuration for the Discord upstream.
type DiscordConfig struct {
	// BaseURL overrides the API endpoint. Default: the public endpoint.
	BaseURL string `yaml:"base_url"`

	// BotToken authorizes user lookups.
	// Typically set through DISCORD_BOT_TOKEN.
	BotToken string `yaml:"bot_token"`

	// UserID is the profile served by /discord/profile.
	// Typically set through DISCORD_USER_ID.
	UserID string `yaml:"user_id"`

	// Timeout is the per-request timeout. Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig configures one sliding window limiter.
type RateLimitConfig struct {
	// Window is the trailing window length.
	Window time.Duration `yaml:"window"`

	// MaxRequests is the admission ceiling per client key per window.
	MaxRequests int `yaml:"max_requests"`
}

// LimitsConfig contains rate limiter configuration.
// Both limiters apply to LastFM traffic; the stricter LastFM-scoped one is
// consulted first and its admissions are not rolled back when the global
// limiter rejects.
type LimitsConfig struct {
	// LastFM is the limiter scoped to the /lastfm route prefix.
	// Default: 50 requests / 15 minutes
	LastFM RateLimitConfig `yaml:"lastfm"`

	// Global is the limiter applied to every route.
	// Default: 100 requests / 15 minutes
	Global RateLimitConfig `yaml:"global"`

	// CleanupInterval is how often idle client keys are swept.
	// Default: 5m
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text"). Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records. Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets scrubs upstream credentials from logged values.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`
}

// MetricsConfig contains prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served. Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path. Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes all metric names. Default: "relay"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets are the histogram buckets for request
	// durations in seconds.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// AuditConfig contains configuration for the request audit log.
type AuditConfig struct {
	// Enabled controls whether completed requests are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the store: "memory" or "sqlite". Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path when Backend is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`

	// MaxEntries bounds the memory backend. Default: 10000
	MaxEntries int `yaml:"max_entries"`

	// RetentionDays is how long entries are kept before pruning.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for retention pruning.
	// Empty disables scheduled pruning. Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}
