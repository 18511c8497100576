// Package cache holds parsed seasons and replay results in memory.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// sweepEvery is how many writes pass between scans for expired entries.
// Replay keys include caller-chosen rating params, so the key space is open.
const sweepEvery = 256

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && !e.expiresAt.After(now)
}

// Store is a TTL map whose loads are deduplicated per key.
// A zero or negative ttl keeps entries for the life of the process.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	writes  int
	ttl     time.Duration
	flight  singleflight.Group
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get reports a hit only for unexpired entries. Expired entries are left
// for the next sweep.
func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.now(), s.ttl) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	now := s.now()
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = e
	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweepLocked(now)
	}
}

// Len counts stored entries, expired or not.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if e.expired(now, s.ttl) {
			delete(s.entries, key)
		}
	}
}

// GetOrLoad returns the cached value or runs loader once for all concurrent
// callers of the same key. Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("cache: loader is required for key %q", key)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, _ := v.(V)
	return value, nil
}
