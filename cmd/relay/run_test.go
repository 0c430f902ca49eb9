package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tamewtf/relay/pkg/config"
	"tamewtf/relay/pkg/telemetry/logging"
)

func TestStartConfigWatcher_ReturnsWithoutBlocking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("development: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	logger, err := logging.New(config.LoggingConfig{Level: "error", Format: "json"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	// The watch loop blocks until cancelled; the helper must hand it off
	// to a goroutine and return so startup can continue to the listener.
	type result struct {
		stop func()
		err  error
	}
	resultCh := make(chan result, 1)
	go func() {
		stop, err := startConfigWatcher(path, logger)
		resultCh <- result{stop, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("startConfigWatcher: %v", res.err)
		}
		res.stop()
	case <-time.After(2 * time.Second):
		t.Fatal("startConfigWatcher did not return; watch loop is running on the startup path")
	}
}

func TestStartConfigWatcher_MissingPath(t *testing.T) {
	logger, err := logging.New(config.LoggingConfig{Level: "error", Format: "json"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	if _, err := startConfigWatcher("", logger); err == nil {
		t.Fatal("expected error for empty config path")
	}
}
