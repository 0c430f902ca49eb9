package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tamewtf/relay/pkg/config"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON LogFormat = "json"
	// FormatText outputs logs in plain text format.
	FormatText LogFormat = "text"
)

// Logger provides structured logging with credential redaction.
type Logger struct {
	// slog is the underlying structured logger
	slog *slog.Logger

	// redactor scrubs upstream credentials from log fields
	redactor *Redactor

	// level is the minimum log level
	level slog.Level

	// format is the output format
	format LogFormat
}

// New creates a new Logger from the telemetry logging configuration.
// Output goes to writer; a nil writer defaults to os.Stdout.
func New(cfg config.LoggingConfig, writer io.Writer) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	if writer == nil {
		writer = os.Stdout
	}

	var redactor *Redactor
	if cfg.RedactSecrets {
		redactor = NewRedactor()
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return &Logger{
		slog:     slog.New(handler),
		redactor: redactor,
		level:    level,
		format:   format,
	}, nil
}

// Slog returns the underlying slog.Logger for components that want the
// standard interface. Redaction does not apply to records logged through it.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// log is the internal logging method that handles credential redaction.
func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	// Fast path: if level is disabled, return immediately
	if !l.slog.Enabled(ctx, level) {
		return
	}

	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}

	l.slog.Log(ctx, level, msg, args...)
}

// With creates a new logger with additional fields.
func (l *Logger) With(args ...any) *Logger {
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}

	return &Logger{
		slog:     l.slog.With(args...),
		redactor: l.redactor,
		level:    l.level,
		format:   l.format,
	}
}

// parseLevel parses a log level string into slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// parseFormat parses a log format string into LogFormat.
func parseFormat(formatStr string) (LogFormat, error) {
	switch formatStr {
	case "json", "JSON", "":
		return FormatJSON, nil
	case "text", "TEXT":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format: %s", formatStr)
	}
}
