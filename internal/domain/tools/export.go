package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/csvio"
)

const (
	exportDateLayout      = "2006-01-02 15:04:05"
	metaDescriptionWords  = 30
	generatedExcerptWords = 55
)

// ExportFields keeps the known fields of requested, in order; none known means the
// default selection.
func ExportFields(requested []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, f := range requested {
		f = strings.ToLower(strings.TrimSpace(f))
		if _, ok := exportLabels[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExportFields...)
	}
	return out
}

// Export renders every published post as CSV with the selected columns.
func (s *service) Export(ctx context.Context, fields []string) ([]byte, error) {
	fields = ExportFields(fields)
	posts, err := s.store.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, exportLabels[f])
	}
	records := [][]string{header}
	for _, post := range posts {
		record := make([]string, 0, len(fields))
		for _, f := range fields {
			value, err := s.exportValue(ctx, post, f)
			if err != nil {
				return nil, err
			}
			record = append(record, value)
		}
		records = append(records, record)
	}
	s.logger.Info("posts exported", "posts", len(posts), "fields", strings.Join(fields, ","))
	return csvio.WriteAll(records)
}

func (s *service) exportValue(ctx context.Context, post content.Post, field string) (string, error) {
	switch field {
	case FieldMetaTitle:
		title, _, err := s.store.GetMeta(ctx, post.ID, content.MetaSEOTitle)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(title) == "" {
			title = post.Title
		}
		return content.CollapseSpace(title), nil
	case FieldMetaDescription:
		desc, _, err := s.store.GetMeta(ctx, post.ID, content.MetaSEODescription)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(desc) == "" {
			desc = content.TrimWords(content.PlainText(post.Body), metaDescriptionWords)
		}
		return content.CollapseSpace(desc), nil
	case FieldPostTitle:
		return content.CollapseSpace(post.Title), nil
	case FieldPostHTML:
		return content.CollapseSpace(post.Body), nil
	case FieldAuthor:
		return post.Author, nil
	case FieldPublishDate:
		if post.PublishedAt.IsZero() {
			return "", nil
		}
		return post.PublishedAt.Format(exportDateLayout), nil
	case FieldURL:
		return post.URL, nil
	case FieldCategories:
		return strings.Join(post.Categories, ", "), nil
	case FieldExcerpt:
		if e := strings.TrimSpace(post.Excerpt); e != "" {
			return content.CollapseSpace(e), nil
		}
		return content.TrimWords(content.PlainText(post.Body), generatedExcerptWords), nil
	default:
		return "", nil
	}
}
