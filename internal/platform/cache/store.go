// Package cache holds derived values in process memory.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fbsn11/team-management-app/internal/platform/resilience"
)

var errNoLoader = errors.New("cache: loader is required")

type item[V any] struct {
	value   V
	expires time.Time
}

// Store is a TTL cache with per-key load deduplication. A ttl <= 0 keeps
// values until they are replaced or deleted.
//
// Every Set or Delete bumps the key's generation. A load that started
// before the bump returns its result to its callers but does not store it,
// so an invalidation is never overwritten by an older computation.
type Store[V any] struct {
	ttl    time.Duration
	now    func() time.Time
	flight resilience.SingleFlight[V]

	mu    sync.RWMutex
	items map[string]item[V]
	gens  map[string]uint64
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]item[V]),
		gens:  make(map[string]uint64),
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.expired(it) {
		var zero V
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	s.mu.Lock()
	s.items[key] = s.wrap(value)
	s.gens[key]++
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.gens[key]++
	s.mu.Unlock()
	s.flight.Forget(key)
}

// Len counts stored values, including expired ones not yet evicted.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value for key or computes it with load.
// Concurrent callers for one key share a single load. Errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if load == nil {
		var zero V
		return zero, errNoLoader
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := s.flight.Do(key, func() (V, error) {
		s.mu.RLock()
		gen := s.gens[key]
		s.mu.RUnlock()

		loaded, err := load(ctx)
		if err != nil {
			return loaded, err
		}

		s.mu.Lock()
		if s.gens[key] == gen {
			s.items[key] = s.wrap(loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	return v, err
}

func (s *Store[V]) wrap(value V) item[V] {
	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}
	return it
}

func (s *Store[V]) expired(it item[V]) bool {
	return s.ttl > 0 && !s.now().Before(it.expires)
}
