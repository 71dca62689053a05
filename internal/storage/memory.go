// FilePath: internal/storage/memory.go
package storage

import (
	"context"
	"sync"
)

// MemoryStore is the local fallback cache: an in-process key/value map that
// is unconditionally available. It carries the service through remote
// outages with last-known values.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty local cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// IsRemoteAvailable is always false for the local cache; it is the tier
// callers land on when the remote is not.
func (s *MemoryStore) IsRemoteAvailable(ctx context.Context) bool {
	return false
}

// Subscribe is unsupported locally; push delivery requires the remote store.
func (s *MemoryStore) Subscribe(ctx context.Context, topic string, handler Handler) (func(), bool) {
	return nil, false
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
