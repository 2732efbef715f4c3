package reports

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStorage keeps reports in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Save stores data under a fresh key.
func (s *MemoryStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	key := NewKey(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return key, nil
}

// Open returns a reader for the stored report.
func (s *MemoryStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ Storage = (*MemoryStorage)(nil)
