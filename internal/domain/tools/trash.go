package tools

import (
	"context"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/csvio"
)

// Trash moves the posts listed in a one-column URL file to the trash.
func (s *service) Trash(ctx context.Context, records [][]string) (Report, error) {
	report := newReport("trash")
	site := s.resolver.Site()

	for i := 1; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		line, rawURL := lineOf(i), csvio.Field(records[i], 0)
		report.Processed++

		if rawURL == "" {
			report.fail(line, "", "empty URL")
			continue
		}
		if !site.Owns(rawURL) {
			report.fail(line, rawURL, "URL is invalid or outside the site")
			continue
		}
		id, ok, err := s.resolver.LookupByURL(ctx, rawURL)
		if err != nil {
			report.fail(line, rawURL, "lookup failed: %v", err)
			continue
		}
		if !ok {
			report.fail(line, rawURL, "no post found for this URL")
			continue
		}
		post, ok, err := s.store.Get(ctx, id)
		if err != nil || !ok {
			report.fail(line, rawURL, "post %d not found", id)
			continue
		}
		if post.Status == content.StatusTrash {
			report.warn(line, rawURL, "post %q (%d) is already in the trash", post.Title, post.ID)
			continue
		}
		if err := s.store.Trash(ctx, id); err != nil {
			report.fail(line, rawURL, "failed to trash post %d: %v", id, err)
			continue
		}
		report.Succeeded++
	}
	s.logRun(report)
	return report, nil
}
