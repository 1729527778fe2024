// Package cache provides the process-wide read-through list caches backing
// the vouchers screen. Each resource key carries its own staleness window
// and fetch function; mutations invalidate, the next read refetches. There
// is no merging or patching of cached entries.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FetchFunc loads the fresh value for a key from the backend
type FetchFunc func(ctx context.Context) (interface{}, error)

// entry is one cached resource list
type entry struct {
	ttl       time.Duration
	fetch     FetchFunc
	value     interface{}
	fetchedAt time.Time
	valid     bool
}

func (e *entry) stale(now time.Time) bool {
	return !e.valid || now.Sub(e.fetchedAt) > e.ttl
}

// Store is a keyed read-through cache with per-key staleness windows
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore creates an empty cache store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		logger:  logger,
		now:     time.Now,
	}
}

// Register binds a key to its staleness window and fetch function.
// Registering an existing key replaces it and drops any cached value.
func (s *Store) Register(key string, ttl time.Duration, fetch FetchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{ttl: ttl, fetch: fetch}
}

// Get returns the cached value for key, refetching when the entry is stale
// or was invalidated. A failed refetch leaves the entry invalid so the next
// read retries.
func (s *Store) Get(ctx context.Context, key string) (interface{}, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("cache key not registered: %s", key)
	}

	if !e.stale(s.now()) {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	// Fetch outside the lock; a slow backend must not block other keys
	value, err := e.fetch(ctx)
	if err != nil {
		s.logger.Error("Cache refetch failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to refresh %s: %w", key, err)
	}

	s.mu.Lock()
	e.value = value
	e.fetchedAt = s.now()
	e.valid = true
	s.mu.Unlock()

	s.logger.Debug("Cache refreshed", zap.String("key", key))
	return value, nil
}

// Invalidate marks the key stale so the next Get refetches
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.valid = false
	}
}
