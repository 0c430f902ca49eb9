package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindowLog implements per-key sliding window rate limiting.
//
// Each key owns an ordered log of admission timestamps. On every check,
// entries older than the window are pruned before the remaining count is
// compared against the limit. This counts events over a true trailing
// interval and avoids the reset spike of fixed windows.
//
// # Algorithm
//
//  1. Prune entries with timestamp <= now - window
//  2. Reject if the remaining count has reached the limit
//  3. Otherwise append now and admit
//
// Rejections do not consume a slot. State is held in memory only; a restart
// resets every key's budget.
//
// # Thread Safety
//
// SlidingWindowLog is thread-safe using sync.Mutex. Admission checks for the
// same key are serialized, so concurrent requests cannot undercount.
type SlidingWindowLog struct {
	window time.Duration
	max    int

	mu   sync.Mutex
	logs map[string][]time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewSlidingWindowLog creates a new per-key sliding window limiter.
//
// If cfg.CleanupInterval is non-zero, a janitor goroutine periodically drops
// keys that have been idle for longer than the window. Callers that enable
// the janitor must call Close to stop it.
func NewSlidingWindowLog(cfg Config) *SlidingWindowLog {
	l := &SlidingWindowLog{
		window: cfg.Window,
		max:    cfg.MaxRequests,
		logs:   make(map[string][]time.Time),
		done:   make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go l.janitor(cfg.CleanupInterval)
	}

	return l
}

// Admit checks whether a request from key may proceed at the given time.
//
// The current time is injected rather than read from a global clock so the
// limiter is deterministic under test. On admission the timestamp is
// recorded; on rejection the log is left untouched and RetryAfter reports
// how long until the oldest surviving entry ages out of the window.
func (l *SlidingWindowLog) Admit(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)

	// Prune entries that have aged out of the window. Entries are appended
	// in real time, so the log is chronological and pruning keeps a suffix.
	log := l.logs[key]
	recent := log[:0:len(log)]
	for _, ts := range log {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.logs[key] = recent
		return Decision{
			Allowed:    false,
			Limit:      l.max,
			Remaining:  0,
			Reset:      now.Add(l.window),
			RetryAfter: recent[0].Add(l.window).Sub(now),
		}
	}

	recent = append(recent, now)
	l.logs[key] = recent

	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - len(recent),
		Reset:     now.Add(l.window),
	}
}

// Keys returns the number of keys currently tracked.
func (l *SlidingWindowLog) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.logs)
}

// Close stops the janitor goroutine. Safe to call multiple times.
func (l *SlidingWindowLog) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// janitor periodically drops keys whose newest entry is older than the
// window. Without it, a key that stops sending requests would hold its log
// forever.
func (l *SlidingWindowLog) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep(time.Now())
		}
	}
}

// sweep removes keys with no entries inside the window.
func (l *SlidingWindowLog) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	for key, log := range l.logs {
		if len(log) == 0 || !log[len(log)-1].After(windowStart) {
			delete(l.logs, key)
		}
	}
}
