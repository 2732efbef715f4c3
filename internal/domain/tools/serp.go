package tools

import (
	"context"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/csvio"
)

// UpdateSERP writes the SEO title and description of posts from (url, title,
// description) rows. Empty cells leave the existing value untouched.
func (s *service) UpdateSERP(ctx context.Context, records [][]string) (Report, error) {
	report := newReport("serp")
	for i := 1; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		line, record := lineOf(i), records[i]
		report.Processed++

		if len(record) < 3 {
			report.fail(line, "", "invalid format, expected URL, title and description")
			continue
		}
		rawURL := csvio.Field(record, 0)
		if !content.ValidURL(rawURL) {
			report.fail(line, rawURL, "invalid or empty URL")
			continue
		}
		id, ok, err := s.resolver.LookupByURL(ctx, rawURL)
		if err != nil {
			report.fail(line, rawURL, "lookup failed: %v", err)
			continue
		}
		if !ok {
			report.fail(line, rawURL, "no post or page found for this URL")
			continue
		}

		title, desc := content.CollapseSpace(csvio.Field(record, 1)), csvio.Field(record, 2)
		if title == "" && desc == "" {
			report.warn(line, rawURL, "post %d found but the row has no title or description", id)
			continue
		}
		if title != "" {
			if err := s.store.SetMeta(ctx, id, content.MetaSEOTitle, title); err != nil {
				report.fail(line, rawURL, "failed to save title: %v", err)
				continue
			}
		}
		if desc != "" {
			if err := s.store.SetMeta(ctx, id, content.MetaSEODescription, desc); err != nil {
				report.fail(line, rawURL, "failed to save description: %v", err)
				continue
			}
		}
		report.Succeeded++
	}
	s.logRun(report)
	return report, nil
}
