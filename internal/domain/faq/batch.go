package faq

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/contenttools/internal/infra/csvio"
	apperrors "github.com/yanqian/contenttools/pkg/errors"
	"github.com/yanqian/contenttools/pkg/metrics"
	"github.com/yanqian/contenttools/pkg/util"
)

// AnalyzeURLs generates a FAQ for every URL, one provider call at a time. A failing row
// is recorded and the run continues; only cancellation stops it early.
func (s *service) AnalyzeURLs(ctx context.Context, urls []string) (BatchResult, error) {
	if s.completer == nil {
		return BatchResult{}, apperrors.Wrap(CodeConfiguration, "provider api key is not configured", nil)
	}

	var result BatchResult
	for _, raw := range urls {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return result, fmt.Errorf("batch analysis interrupted: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch analysis interrupted: %w", err)
		}

		result.Processed++
		row, usage, err := s.analyzeURL(ctx, u)
		result.TokenUsage = result.TokenUsage.Add(usage)
		if err != nil {
			failure := FailureRow{
				URL:       u,
				ContentID: row.ContentID,
				Title:     row.Title,
				Code:      apperrors.CodeOf(err, CodeAPI),
				Message:   err.Error(),
			}
			result.Failed = append(result.Failed, failure)
			s.logger.Warn("faq batch row failed", "url", u, "postId", row.ContentID, "code", failure.Code, "error", err)
			continue
		}
		result.Succeeded = append(result.Succeeded, row)
		s.logger.Info("faq batch row analyzed", "url", u, "postId", row.ContentID, "items", len(row.Items))
	}

	if err := s.writeBatchReports(ctx, &result); err != nil {
		return result, err
	}
	return result, nil
}

func (s *service) analyzeURL(ctx context.Context, u string) (ReviewRow, metrics.TokenUsage, error) {
	row := ReviewRow{URL: u}
	id, ok, err := s.locator.LookupByURL(ctx, u)
	if err != nil {
		return row, metrics.TokenUsage{}, apperrors.Wrap(CodeStore, "url lookup failed", err)
	}
	if !ok {
		return row, metrics.TokenUsage{}, apperrors.Wrap(CodeNotFound, "no post found for url", nil)
	}
	row.ContentID = id

	post, err := s.loadPost(ctx, id)
	if err != nil {
		return row, metrics.TokenUsage{}, err
	}
	row.Title = post.Title

	generated, err := s.generate(ctx, post, "")
	if err != nil {
		return row, generated.usage, err
	}
	row.Items = generated.items
	return row, generated.usage, nil
}

func (s *service) writeBatchReports(ctx context.Context, result *BatchResult) error {
	if s.reports == nil {
		return nil
	}
	stamp := util.FileStamp(s.now())

	if len(result.Succeeded) > 0 {
		data, err := csvio.WriteAll(ReviewRecords(result.Succeeded))
		if err != nil {
			return apperrors.Wrap(CodeStore, "failed to encode faq report", err)
		}
		key, err := s.reports.Save(ctx, "faq-analysis-"+stamp+".csv", data)
		if err != nil {
			return apperrors.Wrap(CodeStore, "failed to store faq report", err)
		}
		result.SuccessReport = key
	}

	if len(result.Failed) > 0 {
		data, err := csvio.Marshal(result.Failed)
		if err != nil {
			return apperrors.Wrap(CodeStore, "failed to encode faq error report", err)
		}
		key, err := s.reports.Save(ctx, "faq-analysis-errors-"+stamp+".csv", data)
		if err != nil {
			return apperrors.Wrap(CodeStore, "failed to store faq error report", err)
		}
		result.ErrorReport = key
	}
	return nil
}

// ApplyReviewed stores the FAQ of every reviewed row. The post is taken from the id
// column, or looked up by URL when the id is blank. Rows are independent.
func (s *service) ApplyReviewed(ctx context.Context, records [][]string) (ApplyReport, error) {
	var report ApplyReport
	for i, record := range records {
		if i == 0 && IsReviewHeader(record) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("apply reviewed interrupted: %w", err)
		}
		entry := ParseReviewRecord(record)
		if entry.URL == "" && entry.ContentID == 0 {
			continue
		}
		report.Processed++

		if err := s.applyReviewed(ctx, &entry); err != nil {
			report.Failed = append(report.Failed, FailureRow{
				URL:       entry.URL,
				ContentID: entry.ContentID,
				Title:     entry.Title,
				Code:      apperrors.CodeOf(err, CodeStore),
				Message:   err.Error(),
			})
			s.logger.Warn("faq reviewed row failed", "url", entry.URL, "postId", entry.ContentID, "error", err)
			continue
		}
		report.Applied++
	}
	return report, nil
}

func (s *service) applyReviewed(ctx context.Context, entry *ReviewedEntry) error {
	if entry.ContentID == 0 {
		id, ok, err := s.locator.LookupByURL(ctx, entry.URL)
		if err != nil {
			return apperrors.Wrap(CodeStore, "url lookup failed", err)
		}
		if !ok {
			return apperrors.Wrap(CodeNotFound, "no post found for url", nil)
		}
		entry.ContentID = id
	}
	_, err := s.Apply(ctx, entry.ContentID, entry.Items)
	return err
}
