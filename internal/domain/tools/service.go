// Package tools implements the CSV-driven bulk maintenance tools.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/contenttools/internal/domain/content"
)

// Service runs bulk tools. Every method takes the parsed CSV records including the
// header row, processes data rows in order and never stops on a failing row.
type Service interface {
	UpdateAltText(ctx context.Context, records [][]string) (Report, error)
	UpdateSERP(ctx context.Context, records [][]string) (Report, error)
	Recategorize(ctx context.Context, records [][]string) (Report, error)
	Trash(ctx context.Context, records [][]string) (Report, error)
	Export(ctx context.Context, fields []string) ([]byte, error)
}

type service struct {
	store    content.Store
	resolver *content.Resolver
	logger   *slog.Logger
}

// NewService wires the tools to the content store.
func NewService(store content.Store, resolver *content.Resolver, logger *slog.Logger) Service {
	return &service{
		store:    store,
		resolver: resolver,
		logger:   logger.With("component", "tools.service"),
	}
}

// lineOf converts a record index to its 1-based CSV line; the header is line 1.
func lineOf(i int) int {
	return i + 1
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (s *service) logRun(report Report) {
	s.logger.Info("bulk tool finished",
		"tool", report.Tool,
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"warnings", len(report.Warnings),
		"errors", len(report.Errors),
	)
}
