package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner enforces the retention policy on the audit store. It deletes
// entries older than the retention period, either on demand through Prune
// or on a cron schedule through Start.
type Pruner struct {
	store         Store
	retentionDays int
	schedule      string
	logger        *slog.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewPruner creates a retention pruner for the given store. A retention of
// 0 days disables age-based pruning; an empty schedule disables the
// scheduler.
func NewPruner(store Store, retentionDays int, schedule string, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		store:         store,
		retentionDays: retentionDays,
		schedule:      schedule,
		logger:        logger.With("component", "audit.pruner"),
		cron:          cron.New(),
	}
}

// Prune deletes entries older than the retention period and returns how
// many were removed.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.retentionDays)
	deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune by age failed: %w", err)
	}

	return deleted, nil
}

// Start begins scheduled pruning based on the cron expression. An empty
// schedule is a no-op. The scheduler stops when the context is cancelled or
// Stop is called.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == "" {
		p.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", p.schedule, err)
	}

	if _, err := p.cron.AddFunc(p.schedule, func() {
		p.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("audit retention scheduler started",
		"schedule", p.schedule,
		"retention_days", p.retentionDays,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// runPruning executes a pruning cycle.
func (p *Pruner) runPruning(ctx context.Context) {
	deleted, err := p.Prune(ctx)
	if err != nil {
		p.logger.Error("scheduled audit pruning failed", "error", err)
		return
	}

	if deleted > 0 {
		p.logger.Info("scheduled audit pruning completed", "deleted_count", deleted)
	} else {
		p.logger.Debug("scheduled audit pruning completed, no entries deleted")
	}
}

// Stop stops the scheduler and waits for any running job to complete.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil && p.running {
		ctx := p.cron.Stop()
		<-ctx.Done()
		p.running = false
		p.logger.Info("audit retention scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (p *Pruner) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
