package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Unset fields fall back to defaults and the result is validated. An empty
// path yields the pure-default configuration: the original deployment of
// this service was configured through environment variables alone, so a
// config file is optional.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
		ApplyDefaults(cfg)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. RELAY_-prefixed variables follow the
// naming convention RELAY_SECTION_FIELD (e.g. RELAY_SERVER_LISTEN_ADDRESS);
// the well-known variable names the original deployment used (PORT,
// LASTFM_API_KEY, DEFAULT_LASTFM_USERNAME, DISCORD_BOT_TOKEN,
// DISCORD_USER_ID, NODE_ENV=development) are honored as well. Environment
// variables always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Legacy names from the original deployment.
	if val := os.Getenv("PORT"); val != "" {
		cfg.Server.ListenAddress = ":" + val
	}
	if val := os.Getenv("LASTFM_API_KEY"); val != "" {
		cfg.Upstreams.LastFM.APIKey = val
	}
	if val := os.Getenv("DEFAULT_LASTFM_USERNAME"); val != "" {
		cfg.Upstreams.LastFM.Username = val
	}
	if val := os.Getenv("DISCORD_BOT_TOKEN"); val != "" {
		cfg.Upstreams.Discord.BotToken = val
	}
	if val := os.Getenv("DISCORD_USER_ID"); val != "" {
		cfg.Upstreams.Discord.UserID = val
	}

	// Server overrides
	if val := os.Getenv("RELAY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("RELAY_SERVER_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}
	if val := os.Getenv("RELAY_SERVER_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}

	// Upstream overrides
	if val := os.Getenv("RELAY_LASTFM_BASE_URL"); val != "" {
		cfg.Upstreams.LastFM.BaseURL = val
	}
	if val := os.Getenv("RELAY_LASTFM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstreams.LastFM.Timeout = d
		}
	}
	if val := os.Getenv("RELAY_DISCORD_BASE_URL"); val != "" {
		cfg.Upstreams.Discord.BaseURL = val
	}
	if val := os.Getenv("RELAY_DISCORD_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstreams.Discord.Timeout = d
		}
	}

	// Rate limit overrides
	if val := os.Getenv("RELAY_LIMITS_LASTFM_MAX_REQUESTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Limits.LastFM.MaxRequests = n
		}
	}
	if val := os.Getenv("RELAY_LIMITS_LASTFM_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.LastFM.Window = d
		}
	}
	if val := os.Getenv("RELAY_LIMITS_GLOBAL_MAX_REQUESTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Limits.Global.MaxRequests = n
		}
	}
	if val := os.Getenv("RELAY_LIMITS_GLOBAL_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.Global.Window = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("RELAY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("RELAY_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("RELAY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}

	// Audit overrides
	if val := os.Getenv("RELAY_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("RELAY_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("RELAY_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLitePath = val
	}

	// Development mode. NODE_ENV is the legacy name; only the exact value
	// "development" enables it. RELAY_DEVELOPMENT takes precedence.
	if os.Getenv("NODE_ENV") == "development" {
		cfg.Development = true
	}
	if val := os.Getenv("RELAY_DEVELOPMENT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Development = b
		}
	}
}
