package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:3001"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultMaxBodyBytes    = int64(1048576)

	// CORS defaults
	DefaultCORSEnabled          = true
	DefaultCORSMaxAge           = 3600 // 1 hour
	DefaultCORSAllowCredentials = false

	// Upstream defaults
	DefaultUpstreamTimeout = 10 * time.Second

	// Rate limit defaults
	DefaultLastFMWindow       = 15 * time.Minute
	DefaultLastFMMaxRequests  = 50
	DefaultGlobalWindow       = 15 * time.Minute
	DefaultGlobalMaxRequests  = 100
	DefaultLimitsCleanup      = 5 * time.Minute

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultRedactSecrets  = true
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
	DefaultMetricsNS      = "relay"

	// Audit defaults
	DefaultAuditEnabled       = false
	DefaultAuditBackend       = "memory"
	DefaultAuditSQLitePath    = "data/audit.db"
	DefaultAuditMaxEntries    = 10000
	DefaultAuditRetentionDays = 30
	DefaultAuditPruneSchedule = "0 3 * * *"
)

// DefaultRequestDurationBuckets are the histogram buckets for request
// durations, in seconds.
var DefaultRequestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// CORS defaults
	applyCORSDefaults(&cfg.Server.CORS)

	// Upstream defaults
	if cfg.Upstreams.LastFM.Timeout == 0 {
		cfg.Upstreams.LastFM.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstreams.Discord.Timeout == 0 {
		cfg.Upstreams.Discord.Timeout = DefaultUpstreamTimeout
	}

	// Rate limit defaults
	if cfg.Limits.LastFM.Window == 0 {
		cfg.Limits.LastFM.Window = DefaultLastFMWindow
	}
	if cfg.Limits.LastFM.MaxRequests == 0 {
		cfg.Limits.LastFM.MaxRequests = DefaultLastFMMaxRequests
	}
	if cfg.Limits.Global.Window == 0 {
		cfg.Limits.Global.Window = DefaultGlobalWindow
	}
	if cfg.Limits.Global.MaxRequests == 0 {
		cfg.Limits.Global.MaxRequests = DefaultGlobalMaxRequests
	}
	if cfg.Limits.CleanupInterval == 0 {
		cfg.Limits.CleanupInterval = DefaultLimitsCleanup
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNS
	}
	if cfg.Telemetry.Metrics.RequestDurationBuckets == nil {
		cfg.Telemetry.Metrics.RequestDurationBuckets = DefaultRequestDurationBuckets
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.MaxEntries == 0 {
		cfg.Audit.MaxEntries = DefaultAuditMaxEntries
	}
	if cfg.Audit.RetentionDays == 0 {
		cfg.Audit.RetentionDays = DefaultAuditRetentionDays
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultAuditPruneSchedule
	}
}

// applyCORSDefaults fills in the CORS section. A nil AllowedOrigins slice
// means the section was absent from the file, so the permissive defaults
// the original deployment used are applied.
func applyCORSDefaults(cors *CORSConfig) {
	if cors.AllowedOrigins == nil {
		cors.Enabled = DefaultCORSEnabled
		cors.AllowedOrigins = []string{"*"}
	}
	if cors.AllowedMethods == nil {
		cors.AllowedMethods = []string{"GET", "OPTIONS"}
	}
	if cors.AllowedHeaders == nil {
		cors.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cors.ExposedHeaders == nil {
		cors.ExposedHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	}
	if cors.MaxAge == 0 {
		cors.MaxAge = DefaultCORSMaxAge
	}
}

// NewDefaultConfig returns a configuration populated entirely from defaults.
// This is the starting point when no configuration file is provided; the
// original deployment was configured through environment variables alone.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Telemetry.Logging.RedactSecrets = DefaultRedactSecrets
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	return cfg
}
