package storage

import (
	"context"
	"sync"
)

type memoryBackend struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

// NewMemoryBackend keeps slots in process memory. Used by tests and by the
// server when no database-backed sessions are wanted.
func NewMemoryBackend() Backend {
	return &memoryBackend{slots: make(map[string]map[string]string)}
}

func (m *memoryBackend) Load(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[namespace][key]
	return v, ok, nil
}

func (m *memoryBackend) Save(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.slots[namespace]
	if !ok {
		ns = make(map[string]string)
		m.slots[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (m *memoryBackend) Remove(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots[namespace], key)
	if len(m.slots[namespace]) == 0 {
		delete(m.slots, namespace)
	}
	return nil
}
