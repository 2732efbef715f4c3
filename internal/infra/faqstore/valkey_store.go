package faqstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/contenttools/internal/domain/faq"
)

// ValkeyStore caches FAQ lists in a Valkey-compatible database in front of a backing
// store. Without a backing store Valkey is the only copy.
type ValkeyStore struct {
	client  valkey.Client
	backing faq.Store
	prefix  string
	ttl     time.Duration
	logger  *slog.Logger
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, backing faq.Store, prefix string, ttl time.Duration, logger *slog.Logger) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValkeyStore{
		client:  client,
		backing: backing,
		prefix:  prefix,
		ttl:     ttl,
		logger:  logger.With("component", "faqstore.valkey"),
	}
}

// Get implements faq.Store.
func (s *ValkeyStore) Get(ctx context.Context, contentID int64) ([]faq.Item, bool, error) {
	if contentID <= 0 {
		return nil, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(contentID)).Build()).ToString()
	switch {
	case err == nil:
		var items []faq.Item
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			return nil, false, err
		}
		return items, len(items) > 0, nil
	case !valkey.IsValkeyNil(err):
		if s.backing == nil {
			return nil, false, err
		}
		s.logger.Warn("faq cache read failed, using backing store", "postId", contentID, "error", err)
	}

	if s.backing == nil {
		return nil, false, nil
	}
	items, ok, err := s.backing.Get(ctx, contentID)
	if err != nil || !ok {
		return items, ok, err
	}
	if err := s.cache(ctx, contentID, items); err != nil {
		s.logger.Warn("faq cache fill failed", "postId", contentID, "error", err)
	}
	return items, true, nil
}

// Save implements faq.Store.
func (s *ValkeyStore) Save(ctx context.Context, contentID int64, items []faq.Item) error {
	if s.backing != nil {
		if err := s.backing.Save(ctx, contentID, items); err != nil {
			return err
		}
	}
	if err := s.cache(ctx, contentID, items); err != nil {
		if s.backing == nil {
			return err
		}
		s.logger.Warn("faq cache write failed", "postId", contentID, "error", err)
		_ = s.client.Do(ctx, s.client.B().Del().Key(s.entryKey(contentID)).Build()).Error()
	}
	return nil
}

// Delete implements faq.Store.
func (s *ValkeyStore) Delete(ctx context.Context, contentID int64) error {
	if s.backing != nil {
		if err := s.backing.Delete(ctx, contentID); err != nil {
			return err
		}
	}
	return s.client.Do(ctx, s.client.B().Del().Key(s.entryKey(contentID)).Build()).Error()
}

func (s *ValkeyStore) cache(ctx context.Context, contentID int64, items []faq.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(contentID)).Value(string(payload))
	var cmd valkey.Completed
	ttl := s.ttl
	if ttl > 0 && s.backing != nil {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(contentID int64) string {
	return fmt.Sprintf("%s:post:%d", s.prefix, contentID)
}

var _ faq.Store = (*ValkeyStore)(nil)
