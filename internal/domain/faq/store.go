package faq

import (
	"context"

	"github.com/yanqian/contenttools/internal/infra/llm"
)

// Store persists the FAQ list owned by a content item. Save replaces the list.
type Store interface {
	Get(ctx context.Context, contentID int64) ([]Item, bool, error)
	Save(ctx context.Context, contentID int64, items []Item) error
	Delete(ctx context.Context, contentID int64) error
}

// Completer sends a prompt to the configured provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (llm.Completion, error)
}

// Locator resolves public URLs to content ids.
type Locator interface {
	LookupByURL(ctx context.Context, rawURL string) (int64, bool, error)
}

// ReportStorage keeps generated CSV reports and returns a download key.
type ReportStorage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
