package store

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory KV implementation, used when no
// database path is configured and as the test double.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Get returns the stored value for key, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}
