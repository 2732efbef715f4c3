package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/contentstore"
	"github.com/yanqian/contenttools/internal/infra/llm"
	apperrors "github.com/yanqian/contenttools/pkg/errors"
	"github.com/yanqian/contenttools/pkg/metrics"
)

const goodResponse = "```json\n{\"faq\":[{\"question\":\"What is X?\",\"answer\":\"X is Y.\"},{\"question\":\"How does it work?\",\"answer\":\"Like this.\"}]}\n```"

type stubCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (llm.Completion, error)
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (llm.Completion, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.reply(prompt)
}

func replyWith(text string) *stubCompleter {
	return &stubCompleter{reply: func(string) (llm.Completion, error) {
		return llm.Completion{Text: text, Model: "test-model", Usage: metrics.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}}, nil
	}}
}

type memoryFAQStore struct {
	mu    sync.Mutex
	items map[int64][]Item
	err   error
}

func newMemoryFAQStore() *memoryFAQStore {
	return &memoryFAQStore{items: make(map[int64][]Item)}
}

func (m *memoryFAQStore) Get(_ context.Context, id int64) ([]Item, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.items[id]
	return items, ok, nil
}

func (m *memoryFAQStore) Save(_ context.Context, id int64, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[id] = items
	return nil
}

func (m *memoryFAQStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memoryReports struct {
	saved map[string][]byte
}

func (m *memoryReports) Save(_ context.Context, name string, data []byte) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[name] = data
	return name, nil
}

func newTestContent() *contentstore.MemoryStore {
	return contentstore.NewMemoryStore(
		content.Post{ID: 42, Type: content.TypePost, Status: content.StatusPublish, Title: "Title", URL: "https://site/x", Slug: "x", Body: "<h2>What is X?</h2><p>X is Y.</p>"},
		content.Post{ID: 43, Type: content.TypePost, Status: content.StatusPublish, Title: "Other", URL: "https://site/y", Slug: "y", Body: "<p>Nothing useful.</p>"},
		content.Post{ID: 44, Type: content.TypePost, Status: content.StatusTrash, Title: "Gone", URL: "https://site/z", Slug: "z"},
	)
}

func newTestService(completer Completer, store Store, reports ReportStorage) Service {
	posts := newTestContent()
	resolver := content.NewResolver(content.Site{URL: "https://site"}, posts)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{MinItems: 2}, posts, resolver, store, completer, nil, reports, logger)
}

func TestGenerateRequiresProvider(t *testing.T) {
	svc := newTestService(nil, newMemoryFAQStore(), nil)
	_, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 42})
	require.True(t, apperrors.IsCode(err, CodeConfiguration))
}

func TestGenerateNotFound(t *testing.T) {
	svc := newTestService(replyWith(goodResponse), newMemoryFAQStore(), nil)
	for _, id := range []int64{999, 44} {
		_, err := svc.Generate(context.Background(), GenerateRequest{ContentID: id})
		require.True(t, apperrors.IsCode(err, CodeNotFound), "id %d", id)
	}
	_, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 0})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestGenerateSuccess(t *testing.T) {
	completer := replyWith(goodResponse)
	store := newMemoryFAQStore()
	svc := newTestService(completer, store, nil)

	result, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 42, CustomPrompt: "Only two questions."})
	require.NoError(t, err)
	require.Equal(t, int64(42), result.ContentID)
	require.Equal(t, SourceJSON, result.Source)
	require.Equal(t, "test-model", result.Model)
	require.Len(t, result.Items, 2)
	require.NotNil(t, result.TokenUsage)
	require.Equal(t, 15, result.TokenUsage.TotalTokens)

	require.Len(t, completer.prompts, 1)
	require.True(t, strings.HasPrefix(completer.prompts[0], "Only two questions."))
	require.Contains(t, completer.prompts[0], "What is X? X is Y.")
	require.NotContains(t, completer.prompts[0], "<h2>")

	_, ok, _ := store.Get(context.Background(), 42)
	require.False(t, ok, "generation is returned for review, not stored")
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name  string
		reply func(string) (llm.Completion, error)
		code  string
	}{
		{
			name: "api error",
			reply: func(string) (llm.Completion, error) {
				return llm.Completion{}, &llm.APIError{Provider: llm.KindOpenAI, Status: 429, Message: "rate limited"}
			},
			code: CodeAPI,
		},
		{
			name:  "invalid response",
			reply: func(string) (llm.Completion, error) { return llm.Completion{}, llm.ErrInvalidResponse },
			code:  CodeInvalidResponse,
		},
		{
			name:  "transport",
			reply: func(string) (llm.Completion, error) { return llm.Completion{}, errors.New("dial tcp: refused") },
			code:  CodeAPI,
		},
		{
			name:  "no faq",
			reply: func(string) (llm.Completion, error) { return llm.Completion{Text: `{"faq": []}`}, nil },
			code:  CodeNoFAQFound,
		},
		{
			name: "validation",
			reply: func(string) (llm.Completion, error) {
				return llm.Completion{Text: `{"faq":[{"question":"Benefícios do produto","answer":"..."}]}`}, nil
			},
			code: CodeValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&stubCompleter{reply: tc.reply}, newMemoryFAQStore(), nil)
			_, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 42})
			require.Error(t, err)
			require.Equal(t, tc.code, apperrors.CodeOf(err, ""))
		})
	}
}

func TestGenerateValidationCarriesKind(t *testing.T) {
	svc := newTestService(replyWith(`{"faq":[{"question":"Only one?","answer":"Yes."}]}`), newMemoryFAQStore(), nil)
	_, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 42})
	kind, ok := ValidationKindOf(err)
	require.True(t, ok)
	require.Equal(t, InsufficientFAQ, kind)
}

func TestGenerateAcceptsManualFallback(t *testing.T) {
	svc := newTestService(replyWith("Q: Only one?\nA: Yes."), newMemoryFAQStore(), nil)
	result, err := svc.Generate(context.Background(), GenerateRequest{ContentID: 42})
	require.NoError(t, err)
	require.Equal(t, SourceManual, result.Source)
	require.Equal(t, []Item{{Question: "Only one?", Answer: "Yes."}}, result.Items)
}

func TestApplyAndRead(t *testing.T) {
	ctx := context.Background()
	store := newMemoryFAQStore()
	svc := newTestService(nil, store, nil)

	saved, err := svc.Apply(ctx, 42, []Item{
		{Question: " Q1 &amp; more? ", Answer: "A1"},
		{Question: "Q2?", Answer: ""},
		{Question: "", Answer: "orphan"},
	})
	require.NoError(t, err)
	require.Equal(t, []Item{{Question: "Q1 & more?", Answer: "A1"}}, saved)

	items, err := svc.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, saved, items)

	doc, err := svc.StructuredData(ctx, 42)
	require.NoError(t, err)
	require.Contains(t, string(doc), `"name":"Q1 & more?"`)

	require.NoError(t, svc.Remove(ctx, 42))
	_, err = svc.Get(ctx, 42)
	require.True(t, apperrors.IsCode(err, CodeNotFound))
	_, err = svc.StructuredData(ctx, 42)
	require.True(t, apperrors.IsCode(err, CodeNotFound))
}

func TestApplyStripsMarkup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, newMemoryFAQStore(), nil)

	saved, err := svc.Apply(ctx, 42, []Item{
		{Question: "&lt;/script&gt;&lt;script&gt;alert(1)&lt;/script&gt;What is X?", Answer: "<b>X</b> is Y."},
		{Question: "<img src=x onerror=alert(1)>", Answer: "only markup"},
	})
	require.NoError(t, err)
	require.Equal(t, []Item{{Question: "What is X?", Answer: "X is Y."}}, saved)

	doc, err := svc.StructuredData(ctx, 42)
	require.NoError(t, err)
	require.NotContains(t, string(doc), "<script")
	require.NotContains(t, string(doc), "</")
}

func TestApplyRejectsEmptyAndUnknownPosts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryFAQStore()
	svc := newTestService(nil, store, nil)

	_, err := svc.Apply(ctx, 42, []Item{{Question: " ", Answer: " "}})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.Apply(ctx, 999, []Item{{Question: "Q?", Answer: "A"}})
	require.True(t, apperrors.IsCode(err, CodeNotFound))

	store.err = errors.New("disk full")
	_, err = svc.Apply(ctx, 42, []Item{{Question: "Q?", Answer: "A"}})
	require.True(t, apperrors.IsCode(err, CodeStore))
}

func TestAnalyzeURLsContinuesPastFailures(t *testing.T) {
	completer := &stubCompleter{reply: func(prompt string) (llm.Completion, error) {
		if strings.Contains(prompt, "Title: Other") {
			return llm.Completion{}, &llm.APIError{Provider: llm.KindGemini, Status: 500, Message: "boom"}
		}
		return llm.Completion{Text: goodResponse, Usage: metrics.TokenUsage{TotalTokens: 7}}, nil
	}}
	reports := &memoryReports{}
	svc := newTestService(completer, newMemoryFAQStore(), reports)

	result, err := svc.AnalyzeURLs(context.Background(), []string{
		"https://site/x?utm_source=mail",
		"",
		"https://site/missing",
		"https://site/y",
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Processed)
	require.Len(t, result.Succeeded, 1)
	require.Equal(t, int64(42), result.Succeeded[0].ContentID)
	require.Len(t, result.Failed, 2)
	require.Equal(t, CodeNotFound, result.Failed[0].Code)
	require.Equal(t, CodeAPI, result.Failed[1].Code)
	require.Equal(t, int64(43), result.Failed[1].ContentID)
	require.Equal(t, "Other", result.Failed[1].Title)
	require.Equal(t, 7, result.TokenUsage.TotalTokens)
	require.Len(t, completer.prompts, 2)

	require.NotEmpty(t, result.SuccessReport)
	require.NotEmpty(t, result.ErrorReport)
	success := string(reports.saved[result.SuccessReport])
	require.Contains(t, success, "URL,Post ID,Title,Question_1,Answer_1,Question_2,Answer_2")
	require.Contains(t, success, "https://site/x?utm_source=mail,42,Title,What is X?,X is Y.,How does it work?,Like this.")
	failures := string(reports.saved[result.ErrorReport])
	require.Contains(t, failures, "URL,Post ID,Title,Error Code,Message")
	require.Contains(t, failures, "https://site/missing,,,not_found,no post found for url")
}

func TestAnalyzeURLsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	completer := &stubCompleter{}
	completer.reply = func(string) (llm.Completion, error) {
		cancel()
		return llm.Completion{Text: goodResponse}, nil
	}
	svc := newTestService(completer, newMemoryFAQStore(), nil)
	result, err := svc.AnalyzeURLs(ctx, []string{"https://site/x", "https://site/y"})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, result.Processed)
}

func TestApplyReviewedRow(t *testing.T) {
	ctx := context.Background()
	store := newMemoryFAQStore()
	svc := newTestService(nil, store, nil)

	report, err := svc.ApplyReviewed(ctx, [][]string{
		{"URL", "Post ID", "Title", "Question_1", "Answer_1", "Question_2", "Answer_2", "Question_3", "Answer_3"},
		{"https://site/x", "42", "Title", "Q1?", "A1", "Q2?", "A2", "", ""},
		{"https://site/y", "", "Other", "Only?", "One"},
		{"https://site/missing", "", "", "Q?", "A"},
		{"https://site/x", "42", "Title", "", ""},
	})
	require.NoError(t, err)
	require.Equal(t, 4, report.Processed)
	require.Equal(t, 2, report.Applied)
	require.Len(t, report.Failed, 2)
	require.Equal(t, CodeNotFound, report.Failed[0].Code)
	require.Equal(t, CodeInvalidInput, report.Failed[1].Code)

	items, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []Item{{Question: "Q1?", Answer: "A1"}, {Question: "Q2?", Answer: "A2"}}, items)

	items, ok, err = store.Get(ctx, 43)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, items, 1, "reviewed input skips the validator")
}
