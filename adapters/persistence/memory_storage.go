package persistence

import (
	"context"
	"sync"

	"github.com/khoahotran/portfolio/internal/domain/storage"
)

type memoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() storage.Storage {
	return &memoryStorage{items: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
