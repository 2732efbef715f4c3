package contentstore

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yanqian/contenttools/internal/domain/content"
)

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements content.Store on top of the posts, post_meta, terms and
// post_terms tables.
type PostgresStore struct {
	pool Pool
}

var _ content.Store = (*PostgresStore)(nil)

// NewPostgresStore constructs the store.
func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postColumns = `
	p.id, p.post_type, p.status, p.title, p.body, p.excerpt, p.url, p.slug, p.author,
	p.published_at,
	COALESCE(ARRAY(
		SELECT t.name FROM post_terms pt JOIN terms t ON t.id = pt.term_id
		WHERE pt.post_id = p.id ORDER BY t.name
	), '{}')`

func (s *PostgresStore) Get(ctx context.Context, id int64) (content.Post, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return content.Post{}, false, nil
	}
	if err != nil {
		return content.Post{}, false, err
	}
	return post, true, nil
}

func (s *PostgresStore) FindByURL(ctx context.Context, url string) (int64, bool, error) {
	return s.findID(ctx, `
		SELECT id FROM posts
		WHERE url = $1 AND post_type <> 'attachment'
		ORDER BY id
		LIMIT 1
	`, url)
}

func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (int64, bool, error) {
	return s.findID(ctx, `
		SELECT id FROM posts
		WHERE slug = $1 AND post_type <> 'attachment' AND status <> 'trash'
		ORDER BY id
		LIMIT 1
	`, slug)
}

func (s *PostgresStore) UpdateBody(ctx context.Context, id int64, body string) error {
	_, err := s.pool.Exec(ctx, `UPDATE posts SET body = $2 WHERE id = $1`, id, body)
	return err
}

func (s *PostgresStore) GetMeta(ctx context.Context, id int64, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT meta_value FROM post_meta WHERE post_id = $1 AND meta_key = $2
	`, id, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) SetMeta(ctx context.Context, id int64, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO post_meta (post_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`, id, key, value)
	return err
}

func (s *PostgresStore) DeleteMeta(ctx context.Context, id int64, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM post_meta WHERE post_id = $1 AND meta_key = $2`, id, key)
	return err
}

func (s *PostgresStore) Trash(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE posts SET status = 'trash' WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) EnsureCategory(ctx context.Context, name string) (content.Category, bool, error) {
	name = strings.TrimSpace(name)
	var cat content.Category
	err := s.pool.QueryRow(ctx, `
		SELECT id, name FROM terms WHERE taxonomy = 'category' AND lower(name) = lower($1)
	`, name).Scan(&cat.ID, &cat.Name)
	if err == nil {
		return cat, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return content.Category{}, false, err
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO terms (name, taxonomy) VALUES ($1, 'category')
		RETURNING id, name
	`, name).Scan(&cat.ID, &cat.Name)
	if err != nil {
		return content.Category{}, false, err
	}
	return cat, true, nil
}

func (s *PostgresStore) SetCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM post_terms pt USING terms t
		WHERE pt.post_id = $1 AND pt.term_id = t.id AND t.taxonomy = 'category'
	`, id); err != nil {
		return err
	}
	for _, catID := range categoryIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO post_terms (post_id, term_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, id, catID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) FindAttachmentByURL(ctx context.Context, url string) (content.Post, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.url = $1 ORDER BY p.id LIMIT 1`, url)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return content.Post{}, false, nil
	}
	if err != nil {
		return content.Post{}, false, err
	}
	return post, true, nil
}

func (s *PostgresStore) FindReferencing(ctx context.Context, fragment string) ([]content.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+` FROM posts p
		WHERE p.post_type IN ('post', 'page') AND p.status = 'publish'
			AND strpos(p.body, $1) > 0
		ORDER BY p.id
	`, fragment)
}

func (s *PostgresStore) ListPublished(ctx context.Context) ([]content.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+` FROM posts p
		WHERE p.post_type = 'post' AND p.status = 'publish'
		ORDER BY p.id
	`)
}

func (s *PostgresStore) findID(ctx context.Context, query string, args ...any) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *PostgresStore) queryPosts(ctx context.Context, query string, args ...any) ([]content.Post, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []content.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (content.Post, error) {
	var (
		post     content.Post
		postType string
		status   string
	)
	if err := row.Scan(
		&post.ID, &postType, &status, &post.Title, &post.Body, &post.Excerpt,
		&post.URL, &post.Slug, &post.Author, &post.PublishedAt, &post.Categories,
	); err != nil {
		return content.Post{}, err
	}
	post.Type = content.Type(postType)
	post.Status = content.Status(status)
	return post, nil
}
