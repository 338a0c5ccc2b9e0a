package cache

import (
	"context"
	"sync"
)

var _ HTMLCache = (*Memory)(nil)

// Memory is an HTMLCache held in process memory, used when no redis
// address is configured.
type Memory struct {
	mu    sync.RWMutex
	items map[uint]string
}

func NewMemory() *Memory {
	return &Memory{items: make(map[uint]string)}
}

func (m *Memory) GetHTML(_ context.Context, revisionID uint) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	html, ok := m.items[revisionID]
	return html, ok, nil
}

func (m *Memory) SetHTML(_ context.Context, revisionID uint, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[revisionID] = html
	return nil
}
