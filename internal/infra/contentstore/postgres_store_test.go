package contentstore

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/contenttools/internal/domain/content"
)

func TestPostgresStoreGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	published := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM posts p WHERE p.id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "post_type", "status", "title", "body", "excerpt", "url", "slug", "author", "published_at", "categories",
		}).AddRow(int64(42), "post", "publish", "Title", "<p>Body</p>", "", "https://site.test/x/", "x", "ana", published, []string{"News"}))

	store := NewPostgresStore(mock)
	post, ok, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, content.TypePost, post.Type)
	assert.Equal(t, content.StatusPublish, post.Status)
	assert.Equal(t, []string{"News"}, post.Categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindByURLMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id FROM posts").
		WithArgs("https://site.test/missing/").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	store := NewPostgresStore(mock)
	_, ok, err := store.FindByURL(context.Background(), "https://site.test/missing/")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetMeta(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO post_meta").
		WithArgs(int64(7), content.MetaSEOTitle, "New title").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	require.NoError(t, store.SetMeta(context.Background(), 7, content.MetaSEOTitle, "New title"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreEnsureCategoryCreates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name FROM terms").
		WithArgs("Tips").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery("INSERT INTO terms").
		WithArgs("Tips").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(11), "Tips"))

	store := NewPostgresStore(mock)
	cat, created, err := store.EnsureCategory(context.Background(), " Tips ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(11), cat.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetCategories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM post_terms").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO post_terms").
		WithArgs(int64(7), int64(11)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	store := NewPostgresStore(mock)
	require.NoError(t, store.SetCategories(context.Background(), 7, []int64{11}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
