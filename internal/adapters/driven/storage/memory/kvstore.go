package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
)

// Ensure KeyValueStore implements the interface.
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is an in-memory implementation of driven.KeyValueStore.
// Values live for the lifetime of the process.
type KeyValueStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	maxBytes int
}

// NewKeyValueStore creates a new in-memory key-value store. A positive
// maxBytes rejects any value larger than it with domain.ErrStorageQuota.
func NewKeyValueStore(maxBytes int) *KeyValueStore {
	return &KeyValueStore{
		values:   make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

// Get returns a copy of the value stored under key.
func (s *KeyValueStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Set stores a copy of value under key.
func (s *KeyValueStore) Set(_ context.Context, key string, value []byte) error {
	if s.maxBytes > 0 && len(value) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrStorageQuota, len(value), s.maxBytes)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
