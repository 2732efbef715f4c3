package faqstore

import (
	"context"
	"sync"

	"github.com/yanqian/contenttools/internal/domain/faq"
)

// MemoryStore is an in-memory implementation of the FAQ store for tests/dev.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[int64][]faq.Item
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[int64][]faq.Item)}
}

// Get implements faq.Store.
func (s *MemoryStore) Get(_ context.Context, contentID int64) ([]faq.Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.lists[contentID]
	if !ok {
		return nil, false, nil
	}
	return append([]faq.Item(nil), items...), true, nil
}

// Save implements faq.Store.
func (s *MemoryStore) Save(_ context.Context, contentID int64, items []faq.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[contentID] = append([]faq.Item(nil), items...)
	return nil
}

// Delete implements faq.Store.
func (s *MemoryStore) Delete(_ context.Context, contentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, contentID)
	return nil
}

var _ faq.Store = (*MemoryStore)(nil)
