package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig holds the singleton configuration instance.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex

	// initOnce ensures configuration is initialized only once.
	initOnce sync.Once
)

// Initialize loads configuration from the specified path with environment
// variable overrides and stores it as the global singleton configuration.
// This function should be called once at application startup.
// Subsequent calls are ignored (uses sync.Once internally).
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}

		configMutex.Lock()
		globalConfig = cfg
		configMutex.Unlock()
	})

	return initErr
}

// GetConfig returns the global configuration instance.
// It returns nil if Initialize has not been called successfully.
// This function is thread-safe and can be called concurrently.
//
// Handlers read configuration through this accessor on every request, which
// is what makes lazy credential validation and hot reload work: a reload
// swaps the pointer and the next request sees the new values.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig sets the global configuration instance.
// This function is primarily intended for testing.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// ReloadConfig reloads the configuration from the specified path.
// The new configuration replaces the global instance only if loading and
// validation succeed; on error the existing configuration stays in effect.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return nil
}
