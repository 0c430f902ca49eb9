package audit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a bounded in-memory audit store. When the bound is reached
// the oldest entries are dropped. It is the default backend and also serves
// tests.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []*Entry
	maxEntries int
}

// NewMemoryStore creates an in-memory store holding at most maxEntries
// entries. A non-positive bound falls back to 10000.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryStore{
		maxEntries: maxEntries,
	}
}

// Record persists an entry, evicting the oldest when the store is full.
func (s *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryCopy := *entry
	s.entries = append(s.entries, &entryCopy)

	if len(s.entries) > s.maxEntries {
		overflow := len(s.entries) - s.maxEntries
		s.entries = append(s.entries[:0], s.entries[overflow:]...)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}

	results := make([]*Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(results) < limit; i-- {
		entryCopy := *s.entries[i]
		results = append(results, &entryCopy)
	}

	return results, nil
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// DeleteOlderThan removes entries recorded before the cutoff.
func (s *MemoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	var deleted int64
	for _, entry := range s.entries {
		if entry.Time.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept

	return deleted, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
