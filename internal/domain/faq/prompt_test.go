package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type wordBudget struct{}

func (wordBudget) Truncate(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}

func TestPromptBuilderDefault(t *testing.T) {
	prompt := NewPromptBuilder("", nil, 0).Build(Request{Title: "Bread", Body: "How to bake.", Excerpt: "Baking"})
	require.True(t, strings.HasPrefix(prompt, defaultPrompt))
	require.Contains(t, prompt, "Title: Bread")
	require.Contains(t, prompt, "Content:\nHow to bake.")
	require.Contains(t, prompt, "Summary: Baking")
	require.True(t, strings.HasSuffix(prompt, responseInstruction))
}

func TestPromptBuilderPromptPrecedence(t *testing.T) {
	builder := NewPromptBuilder("  Configured prompt ", nil, 0)
	require.True(t, strings.HasPrefix(builder.Build(Request{}), "Configured prompt\n\n"))
	require.True(t, strings.HasPrefix(builder.Build(Request{CustomPrompt: "Custom"}), "Custom\n\n"))
}

func TestPromptBuilderTruncatesBody(t *testing.T) {
	prompt := NewPromptBuilder("", wordBudget{}, 3).Build(Request{Body: "one two three four five"})
	require.Contains(t, prompt, "Content:\none two three\n")
	require.NotContains(t, prompt, "four")
}

func TestReviewRecords(t *testing.T) {
	records := ReviewRecords([]ReviewRow{
		{URL: "https://site/a", ContentID: 1, Title: "A", Items: []Item{{Question: "Q1?", Answer: "A1"}}},
		{URL: "https://site/b", ContentID: 2, Title: "B", Items: []Item{{Question: "Q1?", Answer: "A1"}, {Question: "Q2?", Answer: "A2"}}},
	})
	require.Equal(t, []string{"URL", "Post ID", "Title", "Question_1", "Answer_1", "Question_2", "Answer_2"}, records[0])
	require.Equal(t, []string{"https://site/a", "1", "A", "Q1?", "A1", "", ""}, records[1])
	require.Len(t, records[2], 7)
}

func TestParseReviewRecord(t *testing.T) {
	entry := ParseReviewRecord([]string{"https://site/x", "42", "Title", "Q1?", "A1", "Q2?", "A2", "", "", " ", ""})
	require.Equal(t, int64(42), entry.ContentID)
	require.Equal(t, []Item{{Question: "Q1?", Answer: "A1"}, {Question: "Q2?", Answer: "A2"}}, entry.Items)

	entry = ParseReviewRecord([]string{"https://site/x", "abc", "T", "Q?"})
	require.Zero(t, entry.ContentID)
	require.Empty(t, entry.Items)

	require.True(t, IsReviewHeader([]string{" url ", "Post ID"}))
	require.False(t, IsReviewHeader([]string{"https://site/x"}))
}
