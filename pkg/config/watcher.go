package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the configuration file for changes and triggers
// reloads. It implements debouncing to prevent reload storms when editors
// write files in multiple steps.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// DefaultDebounceInterval is the quiet period required after a file event
// before a reload is triggered.
const DefaultDebounceInterval = 100 * time.Millisecond

// NewFileWatcher creates a watcher for the given configuration file path.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		path:     filepath.Clean(path),
		debounce: newDebouncer(DefaultDebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	return fw, nil
}

// Watch starts watching for changes to the configuration file and reloads
// the global configuration when it changes. This is a blocking operation
// that runs until the context is cancelled or Stop is called.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	// Watch the parent directory rather than the file itself: editors and
	// orchestrators typically replace config files with rename, which would
	// otherwise break the watch.
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("Config watcher started",
		"path", fw.path,
		"debounce_ms", DefaultDebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("Config watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("Config watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("Config file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			fw.debounce.trigger(func() {
				fw.logger.Info("Reloading configuration", "path", fw.path)

				if err := ReloadConfig(fw.path); err != nil {
					fw.logger.Error("Config reload failed, keeping previous configuration",
						"error", err,
					)
					return
				}

				fw.logger.Info("Configuration reloaded")
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			fw.logger.Error("Config watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the file watcher and closes the underlying fsnotify watcher.
// Safe to call after the watch loop has already exited (for example when
// its context was cancelled first).
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	running := fw.running
	fw.mu.Unlock()

	if running {
		close(fw.stopCh)
		<-fw.doneCh
	}

	fw.debounce.stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// shouldProcessEvent reports whether an event concerns the watched config
// file and should trigger a reload.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	return filepath.Clean(event.Name) == fw.path
}

// debouncer collects rapid events and triggers the callback only after a
// quiet period.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// trigger schedules the callback after the debounce interval, replacing any
// pending callback.
func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// stop cancels any pending callbacks.
func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
