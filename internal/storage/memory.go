package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps records in process memory
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

func memoryKey(owner, key string) string {
	return owner + "/" + key
}

// GetRecord returns a copy of the stored value
func (m *MemoryBackend) GetRecord(_ context.Context, owner, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[memoryKey(owner, key)]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return append([]byte(nil), value...), nil
}

// PutRecord stores a copy of value
func (m *MemoryBackend) PutRecord(_ context.Context, owner, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[memoryKey(owner, key)] = append([]byte(nil), value...)
	return nil
}

// DeleteRecord removes a value; deleting a missing key is not an error
func (m *MemoryBackend) DeleteRecord(_ context.Context, owner, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, memoryKey(owner, key))
	return nil
}
