package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-memory Store for tests. Values still round-trip
// through JSON so tests exercise the same serialization as the gorm
// store.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) LoadCollection(key string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

func (m *Memory) SaveCollection(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}
