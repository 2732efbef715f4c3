package contentstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/contenttools/internal/domain/content"
)

func seedStore() *MemoryStore {
	return NewMemoryStore(
		content.Post{ID: 1, Type: content.TypePage, Status: content.StatusPublish, Title: "Home", URL: "https://site.test/", Slug: ""},
		content.Post{ID: 2, Type: content.TypePost, Status: content.StatusPublish, Title: "Hello", URL: "https://site.test/blog/hello/", Slug: "hello", Categories: []string{"News"}},
		content.Post{ID: 3, Type: content.TypePage, Status: content.StatusPublish, Title: "Team", URL: "https://site.test/about/team/", Slug: "about/team"},
		content.Post{ID: 4, Type: content.TypeAttachment, Status: content.StatusPublish, Title: "hello", URL: "https://site.test/wp-content/uploads/hello.jpg", Slug: "hello"},
		content.Post{ID: 5, Type: content.TypePost, Status: content.StatusDraft, Title: "Draft", Slug: "draft", Body: `<img src="hello.jpg">`},
		content.Post{ID: 6, Type: content.TypePost, Status: content.StatusPublish, Title: "Gallery", Slug: "gallery", Body: `<img src="https://site.test/wp-content/uploads/hello.jpg">`},
	)
}

func TestMemoryStoreResolver(t *testing.T) {
	ctx := context.Background()
	resolver := content.NewResolver(content.Site{URL: "https://site.test", FrontPageID: 1}, seedStore())

	cases := []struct {
		name string
		url  string
		id   int64
		ok   bool
	}{
		{name: "exact", url: "https://site.test/blog/hello/", id: 2, ok: true},
		{name: "query stripped", url: "https://site.test/blog/hello/?utm=1#top", id: 2, ok: true},
		{name: "missing trailing slash", url: "https://site.test/blog/hello", id: 2, ok: true},
		{name: "home", url: "https://site.test", id: 1, ok: true},
		{name: "full path slug", url: "https://other.test/about/team", id: 3, ok: true},
		{name: "last segment slug", url: "https://other.test/2024/05/hello", id: 2, ok: true},
		{name: "unknown", url: "https://site.test/nothing/here", ok: false},
		{name: "empty", url: "   ", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok, err := resolver.LookupByURL(ctx, tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.id, id)
			}
		})
	}
}

func TestMemoryStoreHomeFallsBackToPostsPage(t *testing.T) {
	resolver := content.NewResolver(content.Site{PostsPageID: 9}, seedStore())
	id, ok, err := resolver.LookupByURL(context.Background(), "https://elsewhere.test/")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(9), id)
}

func TestMemoryStoreMetaAndTrash(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	require.NoError(t, store.SetMeta(ctx, 2, content.MetaSEOTitle, "Title"))
	value, ok, err := store.GetMeta(ctx, 2, content.MetaSEOTitle)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Title", value)

	require.NoError(t, store.DeleteMeta(ctx, 2, content.MetaSEOTitle))
	_, ok, err = store.GetMeta(ctx, 2, content.MetaSEOTitle)
	require.NoError(t, err)
	require.False(t, ok)

	require.Error(t, store.SetMeta(ctx, 99, "k", "v"))

	require.NoError(t, store.Trash(ctx, 2))
	post, ok, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, content.StatusTrash, post.Status)

	_, ok, err = store.FindBySlug(ctx, "hello")
	require.NoError(t, err)
	require.False(t, ok, "trashed posts and attachments are not slug matches")
}

func TestMemoryStoreCategories(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	news, created, err := store.EnsureCategory(ctx, "news")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "News", news.Name)

	tips, created, err := store.EnsureCategory(ctx, " Tips ")
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, store.SetCategories(ctx, 2, []int64{tips.ID, news.ID}))
	post, _, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"Tips", "News"}, post.Categories)

	require.Error(t, store.SetCategories(ctx, 2, []int64{404}))
}

func TestMemoryStoreReferencingAndPublished(t *testing.T) {
	ctx := context.Background()
	store := seedStore()

	refs, err := store.FindReferencing(ctx, "hello.jpg")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, int64(6), refs[0].ID)

	published, err := store.ListPublished(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(published))
	for _, p := range published {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []int64{2, 6}, ids)

	attachment, ok, err := store.FindAttachmentByURL(ctx, "https://site.test/wp-content/uploads/hello.jpg")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, content.TypeAttachment, attachment.Type)
}
