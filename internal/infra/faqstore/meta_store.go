package faqstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/domain/faq"
)

// MetaStore keeps each FAQ list as JSON in the owning post's metadata.
type MetaStore struct {
	content content.Store
}

// NewMetaStore constructs a store writing to the content store's post meta.
func NewMetaStore(store content.Store) *MetaStore {
	return &MetaStore{content: store}
}

// Get implements faq.Store.
func (s *MetaStore) Get(ctx context.Context, contentID int64) ([]faq.Item, bool, error) {
	payload, ok, err := s.content.GetMeta(ctx, contentID, content.MetaFAQStructured)
	if err != nil || !ok || payload == "" {
		return nil, false, err
	}
	var items []faq.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, false, fmt.Errorf("decode faq meta for post %d: %w", contentID, err)
	}
	return items, len(items) > 0, nil
}

// Save implements faq.Store.
func (s *MetaStore) Save(ctx context.Context, contentID int64, items []faq.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.content.SetMeta(ctx, contentID, content.MetaFAQStructured, string(payload))
}

// Delete implements faq.Store.
func (s *MetaStore) Delete(ctx context.Context, contentID int64) error {
	return s.content.DeleteMeta(ctx, contentID, content.MetaFAQStructured)
}

var _ faq.Store = (*MetaStore)(nil)
