package store

import (
	"context"
	"sync"

	"github.com/JoshGearou/shortlink/internal/shortener"
)

// MemoryStore is the in-memory shortener.Store. It holds the single shared
// code table for the life of the process; entries are only ever inserted.
type MemoryStore struct {
	mu   sync.RWMutex
	urls map[string]string // code -> long URL
}

// NewMemoryStore creates an empty in-memory code table.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{urls: make(map[string]string)}
}

func (m *MemoryStore) SaveIfAbsent(_ context.Context, code, longURL string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.urls[code]; ok {
		return existing, false, nil
	}

	m.urls[code] = longURL

	return "", true, nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	longURL, ok := m.urls[code]
	if !ok {
		return "", shortener.ErrNotFound
	}

	return longURL, nil
}

func (m *MemoryStore) Len(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.urls)), nil
}
