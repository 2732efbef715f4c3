package faq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/yanqian/contenttools/internal/domain/content"
	apperrors "github.com/yanqian/contenttools/pkg/errors"
	"github.com/yanqian/contenttools/pkg/metrics"
)

// Service exposes FAQ generation and maintenance.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	Apply(ctx context.Context, contentID int64, items []Item) ([]Item, error)
	Get(ctx context.Context, contentID int64) ([]Item, error)
	Remove(ctx context.Context, contentID int64) error
	StructuredData(ctx context.Context, contentID int64) ([]byte, error)
	AnalyzeURLs(ctx context.Context, urls []string) (BatchResult, error)
	ApplyReviewed(ctx context.Context, records [][]string) (ApplyReport, error)
}

type service struct {
	cfg       Config
	content   content.Store
	locator   Locator
	store     Store
	completer Completer
	reports   ReportStorage
	prompts   PromptBuilder
	validator Validator
	limiter   *rate.Limiter
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the FAQ domain. completer is nil when no provider key is
// configured; generation then fails with a configuration error.
func NewService(
	cfg Config,
	contentStore content.Store,
	locator Locator,
	store Store,
	completer Completer,
	budget TokenBudget,
	reports ReportStorage,
	logger *slog.Logger,
) Service {
	var limiter *rate.Limiter
	if cfg.BatchRatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.BatchRatePerMinute/60), 1)
	}
	return &service{
		cfg:       cfg,
		content:   contentStore,
		locator:   locator,
		store:     store,
		completer: completer,
		reports:   reports,
		prompts:   NewPromptBuilder(cfg.Prompt, budget, cfg.MaxContentTokens),
		validator: NewValidator(cfg.minItems()),
		limiter:   limiter,
		logger:    logger.With("component", "faq.service"),
		now:       time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if s.completer == nil {
		return GenerateResult{}, apperrors.Wrap(CodeConfiguration, "provider api key is not configured", nil)
	}
	post, err := s.loadPost(ctx, req.ContentID)
	if err != nil {
		return GenerateResult{}, err
	}

	start := s.now()
	generated, err := s.generate(ctx, post, req.CustomPrompt)
	if err != nil {
		s.logger.Warn("faq generation failed", "postId", post.ID, "error", err)
		return GenerateResult{}, err
	}

	result := GenerateResult{
		ContentID:  post.ID,
		Title:      post.Title,
		Items:      generated.items,
		Source:     generated.source,
		Model:      generated.model,
		DurationMs: s.now().Sub(start).Milliseconds(),
	}
	if !generated.usage.IsZero() {
		usage := generated.usage
		result.TokenUsage = &usage
	}
	s.logger.Info("faq generated", "postId", post.ID, "items", len(result.Items), "source", result.Source, "model", result.Model)
	return result, nil
}

type generation struct {
	items  []Item
	source Source
	model  string
	usage  metrics.TokenUsage
}

// generate runs prompt, provider call, parse and validation for one post.
func (s *service) generate(ctx context.Context, post content.Post, customPrompt string) (generation, error) {
	body := content.PlainText(post.Body)
	prompt := s.prompts.Build(Request{
		ContentID:    post.ID,
		Title:        post.Title,
		Body:         body,
		Excerpt:      post.ExcerptOrSummary(),
		CustomPrompt: customPrompt,
	})

	completion, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return generation{}, providerError(err)
	}

	parsed := Parse(completion.Text)
	out := generation{source: parsed.Source, model: completion.Model, usage: completion.Usage}
	if parsed.Empty() {
		return out, apperrors.Wrap(CodeNoFAQFound, "no eligible faq found in content", nil)
	}
	// Line-parsed pairs are accepted as found; only structured replies are held to
	// the validator's count and format rules.
	if parsed.Source != SourceManual {
		if err := s.validator.Validate(parsed.Items, post.Title+"\n"+body); err != nil {
			return out, apperrors.Wrap(CodeValidation, "generated faq failed validation", err)
		}
	}
	out.items = parsed.Items
	return out, nil
}

func (s *service) Apply(ctx context.Context, contentID int64, items []Item) ([]Item, error) {
	if _, err := s.loadPost(ctx, contentID); err != nil {
		return nil, err
	}
	clean := make([]Item, 0, len(items))
	for _, item := range items {
		q := SanitizeField(item.Question)
		a := SanitizeField(item.Answer)
		if q == "" || a == "" {
			continue
		}
		clean = append(clean, Item{Question: q, Answer: a})
	}
	if len(clean) == 0 {
		return nil, apperrors.Wrap(CodeInvalidInput, "no valid faq items to apply", nil)
	}
	if err := s.store.Save(ctx, contentID, clean); err != nil {
		return nil, apperrors.Wrap(CodeStore, "failed to save faq", err)
	}
	s.logger.Info("faq applied", "postId", contentID, "items", len(clean))
	return clean, nil
}

func (s *service) Get(ctx context.Context, contentID int64) ([]Item, error) {
	items, ok, err := s.store.Get(ctx, contentID)
	if err != nil {
		return nil, apperrors.Wrap(CodeStore, "failed to load faq", err)
	}
	if !ok || len(items) == 0 {
		return nil, apperrors.Wrap(CodeNotFound, fmt.Sprintf("no faq stored for post %d", contentID), nil)
	}
	return items, nil
}

func (s *service) Remove(ctx context.Context, contentID int64) error {
	if err := s.store.Delete(ctx, contentID); err != nil {
		return apperrors.Wrap(CodeStore, "failed to remove faq", err)
	}
	return nil
}

func (s *service) StructuredData(ctx context.Context, contentID int64) ([]byte, error) {
	items, err := s.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	doc, err := RenderJSONLD(items)
	if err != nil {
		return nil, apperrors.Wrap(CodeStore, "failed to render structured data", err)
	}
	return doc, nil
}

func (s *service) loadPost(ctx context.Context, contentID int64) (content.Post, error) {
	if contentID <= 0 {
		return content.Post{}, apperrors.Wrap(CodeInvalidInput, "post id must be positive", nil)
	}
	post, ok, err := s.content.Get(ctx, contentID)
	if err != nil {
		return content.Post{}, apperrors.Wrap(CodeStore, "failed to load post", err)
	}
	if !ok || post.Type == content.TypeAttachment || post.Status == content.StatusTrash {
		return content.Post{}, apperrors.Wrap(CodeNotFound, fmt.Sprintf("post %d not found", contentID), nil)
	}
	return post, nil
}
