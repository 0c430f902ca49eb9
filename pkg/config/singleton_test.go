package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetConfigAndGetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := NewDefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:9999"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil {
		t.Fatal("expected config after SetConfig")
	}
	if got.Server.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("expected listen address %q, got %q", "127.0.0.1:9999", got.Server.ListenAddress)
	}
}

func TestReloadConfig_SwapsGlobal(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  listen_address: "0.0.0.0:7777"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := ReloadConfig(configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	got := GetConfig()
	if got == nil || got.Server.ListenAddress != "0.0.0.0:7777" {
		t.Errorf("expected reloaded listen address %q, got %+v", "0.0.0.0:7777", got)
	}
}

func TestReloadConfig_KeepsPreviousOnError(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	known := NewDefaultConfig()
	known.Server.ListenAddress = "127.0.0.1:8888"
	SetConfig(known)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidContent := `
telemetry:
  logging:
    level: "invalid"
`
	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := ReloadConfig(configPath); err == nil {
		t.Fatal("expected reload error for invalid config")
	}

	got := GetConfig()
	if got == nil || got.Server.ListenAddress != "127.0.0.1:8888" {
		t.Error("expected previous config to remain in effect after failed reload")
	}
}
