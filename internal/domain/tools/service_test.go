package tools

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/contentstore"
	"github.com/yanqian/contenttools/internal/infra/csvio"
)

const siteURL = "https://site.test"

func newTestService(posts ...content.Post) (Service, *contentstore.MemoryStore) {
	store := contentstore.NewMemoryStore(posts...)
	resolver := content.NewResolver(content.Site{URL: siteURL, FrontPageID: 1}, store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, resolver, logger), store
}

func seedPosts() []content.Post {
	return []content.Post{
		{ID: 1, Type: content.TypePage, Status: content.StatusPublish, Title: "Home", URL: siteURL + "/"},
		{ID: 10, Type: content.TypePost, Status: content.StatusPublish, Title: "First Post", URL: siteURL + "/first-post/", Slug: "first-post",
			Body:        `<p>Intro <img class="alignnone size-full wp-image-20" src="` + siteURL + `/wp-content/uploads/cat.jpg" alt="old"></p>`,
			Author:      "Ana",
			PublishedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
			Categories:  []string{"News"}},
		{ID: 11, Type: content.TypePost, Status: content.StatusPublish, Title: "Second Post", URL: siteURL + "/second-post/", Slug: "second-post",
			Body: `<img src='` + siteURL + `/wp-content/uploads/cat.jpg' class='wp-image-20'><img class="wp-image-200" src="other.jpg">`},
		{ID: 12, Type: content.TypePost, Status: content.StatusDraft, Title: "Draft", Slug: "draft",
			Body: `<img class="wp-image-20" src="` + siteURL + `/wp-content/uploads/cat.jpg">`},
		{ID: 13, Type: content.TypePost, Status: content.StatusTrash, Title: "Gone", URL: siteURL + "/gone/", Slug: "gone"},
		{ID: 20, Type: content.TypeAttachment, Status: content.StatusPublish, Title: "cat", URL: siteURL + "/wp-content/uploads/cat.jpg"},
	}
}

func TestUpdateAltText(t *testing.T) {
	svc, store := newTestService(seedPosts()...)
	ctx := context.Background()

	report, err := svc.UpdateAltText(ctx, [][]string{
		{"image_url", "alt_text"},
		{siteURL + "/wp-content/uploads/cat.jpg", `A "cat" & friends`},
		{siteURL + "/wp-content/uploads/missing.jpg", "nothing"},
		{siteURL + "/first-post/", "not an image"},
		{"only-one-column"},
		{"", "empty url"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Processed)
	assert.Equal(t, 1, report.Succeeded)
	assert.Len(t, report.Errors, 4)
	assert.Equal(t, 1, report.Details[DetailImagesUpdated])
	assert.Equal(t, 2, report.Details[DetailImagesNotFound])
	assert.Equal(t, 2, report.Details[DetailRowsSkipped])
	assert.Equal(t, 2, report.Details[DetailTagsUpdated])
	assert.Equal(t, 2, report.Details[DetailPostsUpdated])
	assert.Equal(t, 3, report.Errors[0].Line)

	alt, ok, err := store.GetMeta(ctx, 20, content.MetaImageAlt)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `A "cat" & friends`, alt)

	first, _, _ := store.Get(ctx, 10)
	assert.Contains(t, first.Body, `alt="A &#34;cat&#34; &amp; friends"`)
	assert.NotContains(t, first.Body, `alt="old"`)

	second, _, _ := store.Get(ctx, 11)
	assert.Contains(t, second.Body, `<img alt="A &#34;cat&#34; &amp; friends" src=`)
	assert.Contains(t, second.Body, `<img class="wp-image-200" src="other.jpg">`)

	draft, _, _ := store.Get(ctx, 12)
	assert.NotContains(t, draft.Body, "alt=")
}

func TestRewriteImageAlt(t *testing.T) {
	body := `<IMG CLASS="wp-image-7" ALT='x'><img class="wp-image-70"><img class="a wp-image-7 b" src="y">`
	out, n := RewriteImageAlt(body, 7, "new")
	assert.Equal(t, 2, n)
	assert.Equal(t, `<IMG CLASS="wp-image-7" alt="new"><img class="wp-image-70"><img alt="new" class="a wp-image-7 b" src="y">`, out)
}

func TestUpdateSERP(t *testing.T) {
	svc, store := newTestService(seedPosts()...)
	ctx := context.Background()

	report, err := svc.UpdateSERP(ctx, [][]string{
		{"url", "title", "description"},
		{siteURL + "/first-post/", "  New   Title ", "New description"},
		{siteURL + "/second-post", "", "Only description"},
		{siteURL + "/first-post/", "", ""},
		{"not a url", "t", "d"},
		{siteURL + "/nowhere/", "t", "d"},
		{siteURL + "/first-post/", "t"},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Processed)
	assert.Equal(t, 2, report.Succeeded)
	assert.Len(t, report.Warnings, 1)
	assert.Len(t, report.Errors, 3)

	title, _, _ := store.GetMeta(ctx, 10, content.MetaSEOTitle)
	assert.Equal(t, "New Title", title)
	desc, _, _ := store.GetMeta(ctx, 11, content.MetaSEODescription)
	assert.Equal(t, "Only description", desc)
	_, ok, _ := store.GetMeta(ctx, 11, content.MetaSEOTitle)
	assert.False(t, ok)
}

func TestRecategorize(t *testing.T) {
	svc, store := newTestService(seedPosts()...)
	ctx := context.Background()

	report, err := svc.Recategorize(ctx, [][]string{
		{"url", "categories"},
		{siteURL + "/first-post/", "news, Recipes, recipes"},
		{siteURL + "/second-post/", "Recipes"},
		{"https://elsewhere.test/first-post/", "News"},
		{siteURL + "/first-post/", " "},
		{siteURL + "/unknown/", "News"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Processed)
	assert.Equal(t, 2, report.Succeeded)
	assert.Len(t, report.Errors, 3)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].Message, "Recipes")

	first, _, _ := store.Get(ctx, 10)
	assert.Equal(t, []string{"News", "Recipes"}, first.Categories)
	second, _, _ := store.Get(ctx, 11)
	assert.Equal(t, []string{"Recipes"}, second.Categories)
}

func TestTrash(t *testing.T) {
	svc, store := newTestService(seedPosts()...)
	ctx := context.Background()

	report, err := svc.Trash(ctx, [][]string{
		{"url"},
		{siteURL + "/second-post/"},
		{siteURL + "/gone/"},
		{""},
		{"https://elsewhere.test/first-post/"},
		{siteURL + "/unknown/"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Processed)
	assert.Equal(t, 1, report.Succeeded)
	assert.Len(t, report.Warnings, 1)
	assert.Len(t, report.Errors, 3)

	second, _, _ := store.Get(ctx, 11)
	assert.Equal(t, content.StatusTrash, second.Status)
	first, _, _ := store.Get(ctx, 10)
	assert.Equal(t, content.StatusPublish, first.Status)
}

func TestToolsStopOnCancelledContext(t *testing.T) {
	svc, _ := newTestService(seedPosts()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Trash(ctx, [][]string{{"url"}, {siteURL + "/second-post/"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Processed)
}

func TestExport(t *testing.T) {
	svc, store := newTestService(seedPosts()...)
	ctx := context.Background()
	require.NoError(t, store.SetMeta(ctx, 10, content.MetaSEOTitle, "SEO First"))

	data, err := svc.Export(ctx, nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte(csvio.BOM)))

	records, err := csvio.ReadAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Meta Title", "Meta Description", "Post Title", "Post HTML", "Author", "Publish Date", "URL"}, records[0])
	assert.Equal(t, "SEO First", records[1][0])
	assert.Equal(t, "Intro", records[1][1])
	assert.Equal(t, "2024-05-01 09:30:00", records[1][5])
	assert.Equal(t, "Second Post", records[2][0])
	assert.Equal(t, "", records[2][5])
}

func TestExportFields(t *testing.T) {
	assert.Equal(t, DefaultExportFields, ExportFields([]string{"bogus"}))
	assert.Equal(t, []string{FieldURL, FieldCategories}, ExportFields([]string{" URL ", "categories", "url", "nope"}))

	svc, _ := newTestService(seedPosts()...)
	data, err := svc.Export(context.Background(), []string{FieldPostTitle, FieldCategories, FieldExcerpt})
	require.NoError(t, err)
	records, err := csvio.ReadAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Post Title", "Categories", "Excerpt"}, records[0])
	assert.Equal(t, []string{"First Post", "News", "Intro"}, records[1])
}
