// Package persistence mirrors the in-memory document to durable storage.
package persistence

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	ErrPersistence = errors.New("persistence failure")
	ErrClosed      = errors.New("store is closed")
)

// KVStore is the narrow save/load seam every backend implements.
// Load reports found=false for a key that was never saved.
type KVStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Close() error
}

// MemoryStore keeps values in process. It backs tests and the memory driver.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = slices.Clone(value)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
