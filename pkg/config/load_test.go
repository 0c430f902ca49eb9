package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load default config: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected listen address %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("expected request timeout %v, got %v", 30*time.Second, cfg.Server.RequestTimeout)
	}
	if cfg.Limits.LastFM.MaxRequests != 50 {
		t.Errorf("expected lastfm max requests %d, got %d", 50, cfg.Limits.LastFM.MaxRequests)
	}
	if cfg.Limits.Global.MaxRequests != 100 {
		t.Errorf("expected global max requests %d, got %d", 100, cfg.Limits.Global.MaxRequests)
	}
	if cfg.Limits.LastFM.Window != 15*time.Minute {
		t.Errorf("expected lastfm window %v, got %v", 15*time.Minute, cfg.Limits.LastFM.Window)
	}
	if !cfg.Telemetry.Logging.RedactSecrets {
		t.Error("expected redact_secrets to default to true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to default to enabled")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  listen_address: "0.0.0.0:8080"
  request_timeout: "10s"
  write_timeout: "20s"

upstreams:
  lastfm:
    api_key: "test-key-123"
    username: "tame"
    timeout: "5s"
  discord:
    bot_token: "test-token"
    user_id: "123456789"

limits:
  lastfm:
    window: "1m"
    max_requests: 5

telemetry:
  logging:
    level: "debug"
    format: "text"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:8080" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:8080", cfg.Server.ListenAddress)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("expected request timeout %v, got %v", 10*time.Second, cfg.Server.RequestTimeout)
	}
	if cfg.Upstreams.LastFM.APIKey != "test-key-123" {
		t.Errorf("expected API key %q, got %q", "test-key-123", cfg.Upstreams.LastFM.APIKey)
	}
	if cfg.Upstreams.LastFM.Timeout != 5*time.Second {
		t.Errorf("expected lastfm timeout %v, got %v", 5*time.Second, cfg.Upstreams.LastFM.Timeout)
	}
	if cfg.Limits.LastFM.Window != time.Minute {
		t.Errorf("expected lastfm window %v, got %v", time.Minute, cfg.Limits.LastFM.Window)
	}
	if cfg.Limits.LastFM.MaxRequests != 5 {
		t.Errorf("expected lastfm max requests %d, got %d", 5, cfg.Limits.LastFM.MaxRequests)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}

	// Fields absent from the file fall back to defaults.
	if cfg.Limits.Global.MaxRequests != 100 {
		t.Errorf("expected default global max requests %d, got %d", 100, cfg.Limits.Global.MaxRequests)
	}
	if cfg.Upstreams.Discord.Timeout != DefaultUpstreamTimeout {
		t.Errorf("expected default discord timeout %v, got %v", DefaultUpstreamTimeout, cfg.Upstreams.Discord.Timeout)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	malformedContent := `
server:
  listen_address: "0.0.0.0:8080"
  invalid yaml here: [
`

	if err := os.WriteFile(configPath, []byte(malformedContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidContent := `
telemetry:
  logging:
    level: "invalid"
    format: "json"
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
}

func TestLoadConfig_ExplicitFalseSurvivesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
telemetry:
  metrics:
    enabled: false
  logging:
    redact_secrets: false
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be disabled when explicitly set false")
	}
	if cfg.Telemetry.Logging.RedactSecrets {
		t.Error("expected redact_secrets to be false when explicitly set false")
	}
}

func TestLoadConfigWithEnvOverrides_LegacyNames(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("LASTFM_API_KEY", "env-api-key")
	t.Setenv("DEFAULT_LASTFM_USERNAME", "env-user")
	t.Setenv("DISCORD_BOT_TOKEN", "env-token")
	t.Setenv("DISCORD_USER_ID", "987654321")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != ":4000" {
		t.Errorf("expected listen address %q from PORT, got %q", ":4000", cfg.Server.ListenAddress)
	}
	if cfg.Upstreams.LastFM.APIKey != "env-api-key" {
		t.Errorf("expected API key %q from env, got %q", "env-api-key", cfg.Upstreams.LastFM.APIKey)
	}
	if cfg.Upstreams.LastFM.Username != "env-user" {
		t.Errorf("expected username %q from env, got %q", "env-user", cfg.Upstreams.LastFM.Username)
	}
	if cfg.Upstreams.Discord.BotToken != "env-token" {
		t.Errorf("expected bot token %q from env, got %q", "env-token", cfg.Upstreams.Discord.BotToken)
	}
	if cfg.Upstreams.Discord.UserID != "987654321" {
		t.Errorf("expected user id %q from env, got %q", "987654321", cfg.Upstreams.Discord.UserID)
	}
}

func TestLoadConfigWithEnvOverrides_NodeEnvDevelopment(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Development {
		t.Error("expected development mode from NODE_ENV=development")
	}
}

func TestLoadConfigWithEnvOverrides_NodeEnvOtherValuesIgnored(t *testing.T) {
	t.Setenv("NODE_ENV", "production")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Development {
		t.Error("NODE_ENV=production must not enable development mode")
	}
}

func TestLoadConfigWithEnvOverrides_RelayDevelopmentWinsOverNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	t.Setenv("RELAY_DEVELOPMENT", "false")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Development {
		t.Error("RELAY_DEVELOPMENT=false must take precedence over NODE_ENV")
	}
}

func TestLoadConfigWithEnvOverrides_TakePrecedenceOverFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  listen_address: "127.0.0.1:8080"

upstreams:
  lastfm:
    api_key: "file-key"

telemetry:
  logging:
    level: "info"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("RELAY_SERVER_LISTEN_ADDRESS", "0.0.0.0:9090")
	t.Setenv("LASTFM_API_KEY", "env-key-override")
	t.Setenv("RELAY_LOG_LEVEL", "debug")

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("expected listen address %q from env, got %q", "0.0.0.0:9090", cfg.Server.ListenAddress)
	}
	if cfg.Upstreams.LastFM.APIKey != "env-key-override" {
		t.Errorf("expected API key %q from env, got %q", "env-key-override", cfg.Upstreams.LastFM.APIKey)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q from env, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides_DurationAndIntegerParsing(t *testing.T) {
	t.Setenv("RELAY_SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("RELAY_SERVER_MAX_BODY_BYTES", "2097152")
	t.Setenv("RELAY_LIMITS_LASTFM_MAX_REQUESTS", "5")
	t.Setenv("RELAY_LIMITS_LASTFM_WINDOW", "1m")
	t.Setenv("RELAY_LIMITS_GLOBAL_MAX_REQUESTS", "10")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.RequestTimeout != 45*time.Second {
		t.Errorf("expected request timeout %v, got %v", 45*time.Second, cfg.Server.RequestTimeout)
	}
	if cfg.Server.MaxBodyBytes != 2097152 {
		t.Errorf("expected max body bytes %d, got %d", 2097152, cfg.Server.MaxBodyBytes)
	}
	if cfg.Limits.LastFM.MaxRequests != 5 {
		t.Errorf("expected lastfm max requests %d, got %d", 5, cfg.Limits.LastFM.MaxRequests)
	}
	if cfg.Limits.LastFM.Window != time.Minute {
		t.Errorf("expected lastfm window %v, got %v", time.Minute, cfg.Limits.LastFM.Window)
	}
	if cfg.Limits.Global.MaxRequests != 10 {
		t.Errorf("expected global max requests %d, got %d", 10, cfg.Limits.Global.MaxRequests)
	}
}

func TestLoadConfigWithEnvOverrides_BooleanParsing(t *testing.T) {
	t.Setenv("RELAY_METRICS_ENABLED", "false")
	t.Setenv("RELAY_AUDIT_ENABLED", "true")
	t.Setenv("RELAY_DEVELOPMENT", "true")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be disabled from env")
	}
	if !cfg.Audit.Enabled {
		t.Error("expected audit to be enabled from env")
	}
	if !cfg.Development {
		t.Error("expected development mode to be enabled from env")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	// Unparseable numeric values are ignored; unparseable enum values fail
	// validation.
	t.Setenv("RELAY_SERVER_MAX_BODY_BYTES", "not-a-number")
	t.Setenv("RELAY_LOG_LEVEL", "invalid-level")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Error("expected validation error for invalid env values")
	}
}

func TestLoadConfigWithEnvOverrides_IgnoredMalformedNumberKeepsDefault(t *testing.T) {
	t.Setenv("RELAY_LIMITS_GLOBAL_MAX_REQUESTS", "ten")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Limits.Global.MaxRequests != DefaultGlobalMaxRequests {
		t.Errorf("expected default global max requests %d, got %d",
			DefaultGlobalMaxRequests, cfg.Limits.Global.MaxRequests)
	}
}
