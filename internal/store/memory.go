package store

import (
	"context"
	"sync"

	"github.com/serroba/urlnorm/internal/registry"
)

// MemoryStore is an in-memory implementation of registry.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[registry.Hash]*registry.Entry
}

// NewMemoryStore creates a new in-memory canonical URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[registry.Hash]*registry.Entry),
	}
}

func (m *MemoryStore) Save(_ context.Context, entry *registry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[entry.Hash]; exists {
		return nil
	}

	stored := *entry
	m.entries[entry.Hash] = &stored

	return nil
}

func (m *MemoryStore) GetByHash(_ context.Context, hash registry.Hash) (*registry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[hash]
	if !ok {
		return nil, registry.ErrNotFound
	}

	found := *entry

	return &found, nil
}

func (m *MemoryStore) IncrementHits(_ context.Context, hash registry.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[hash]; ok {
		entry.Hits++
	}

	return nil
}
