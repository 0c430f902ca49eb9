package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. All validation errors are
// collected and returned together as a ValidationError; nil means valid.
//
// Upstream credentials are deliberately NOT validated here: they are checked
// lazily per request so the server can boot (and hot-reload) without them.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{"server.listen_address", "must not be empty"})
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, FieldError{"server.request_timeout", "must be positive"})
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{"server.shutdown_timeout", "must be positive"})
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{"server.max_body_bytes", "must be positive"})
	}
	if cfg.WriteTimeout > 0 && cfg.WriteTimeout <= cfg.RequestTimeout {
		errs = append(errs, FieldError{"server.write_timeout",
			"must exceed request_timeout so timeout responses can be written"})
	}

	return errs
}

func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if cfg.LastFM.Window <= 0 {
		errs = append(errs, FieldError{"limits.lastfm.window", "must be positive"})
	}
	if cfg.LastFM.MaxRequests <= 0 {
		errs = append(errs, FieldError{"limits.lastfm.max_requests", "must be positive"})
	}
	if cfg.Global.Window <= 0 {
		errs = append(errs, FieldError{"limits.global.window", "must be positive"})
	}
	if cfg.Global.MaxRequests <= 0 {
		errs = append(errs, FieldError{"limits.global.max_requests", "must be positive"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level",
			fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", cfg.Logging.Level)})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format",
			fmt.Sprintf("invalid format %q (must be json or text)", cfg.Logging.Format)})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{"telemetry.metrics.path", "must start with /"})
	}

	return errs
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{"audit.backend",
			fmt.Sprintf("invalid backend %q (must be memory or sqlite)", cfg.Backend)})
	}

	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{"audit.sqlite_path", "required when backend is sqlite"})
	}
	if cfg.RetentionDays < 0 {
		errs = append(errs, FieldError{"audit.retention_days", "must not be negative"})
	}

	return errs
}
