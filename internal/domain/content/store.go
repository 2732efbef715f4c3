package content

import "context"

// Store is the persistence contract for posts, media and their metadata.
type Store interface {
	// Get returns the item with the given id, including trashed ones.
	Get(ctx context.Context, id int64) (Post, bool, error)
	// FindByURL matches the canonical permalink exactly.
	FindByURL(ctx context.Context, url string) (int64, bool, error)
	// FindBySlug matches a post or page path; attachments are excluded.
	FindBySlug(ctx context.Context, slug string) (int64, bool, error)
	UpdateBody(ctx context.Context, id int64, body string) error
	GetMeta(ctx context.Context, id int64, key string) (string, bool, error)
	SetMeta(ctx context.Context, id int64, key, value string) error
	DeleteMeta(ctx context.Context, id int64, key string) error
	Trash(ctx context.Context, id int64) error
	// EnsureCategory returns the category named name, creating it when missing.
	EnsureCategory(ctx context.Context, name string) (Category, bool, error)
	SetCategories(ctx context.Context, id int64, categoryIDs []int64) error
	FindAttachmentByURL(ctx context.Context, url string) (Post, bool, error)
	// FindReferencing lists published posts and pages whose body mentions fragment.
	FindReferencing(ctx context.Context, fragment string) ([]Post, error)
	ListPublished(ctx context.Context) ([]Post, error)
}
