package tools

import (
	"context"
	"strings"

	"github.com/yanqian/contenttools/internal/infra/csvio"
)

// Recategorize replaces the categories of posts from (url, "cat1, cat2") rows,
// creating missing categories once per run.
func (s *service) Recategorize(ctx context.Context, records [][]string) (Report, error) {
	report := newReport("categories")
	cache := make(map[string]int64)
	site := s.resolver.Site()

	for i := 1; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		line, record := lineOf(i), records[i]
		report.Processed++

		rawURL, names := csvio.Field(record, 0), splitCategories(csvio.Field(record, 1))
		if rawURL == "" || len(names) == 0 {
			report.fail(line, rawURL, "empty URL or category")
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

		ids := make([]int64, 0, len(names))
		failed := false
		for _, name := range names {
			key := strings.ToLower(name)
			if catID, ok := cache[key]; ok {
				ids = append(ids, catID)
				continue
			}
			cat, created, err := s.store.EnsureCategory(ctx, name)
			if err != nil {
				report.fail(line, rawURL, "failed to create category %q: %v", name, err)
				failed = true
				break
			}
			if created {
				report.warn(line, name, "created category %q", cat.Name)
			}
			cache[key] = cat.ID
			ids = append(ids, cat.ID)
		}
		if failed {
			continue
		}
		if err := s.store.SetCategories(ctx, id, ids); err != nil {
			report.fail(line, rawURL, "failed to set categories on post %d: %v", id, err)
			continue
		}
		report.Succeeded++
	}
	s.logRun(report)
	return report, nil
}

func splitCategories(cell string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(cell, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
