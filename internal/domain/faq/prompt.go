package faq

import "strings"

const defaultPrompt = `You are an SEO specialist who prepares FAQ structured data (Schema.org FAQPage) for existing articles.

Read the article below and extract its questions and answers following these rules:

1. If the article already has an explicit FAQ section (a heading such as "FAQ", "Frequently asked questions", "Perguntas frequentes" followed by questions), use exactly those questions and their answers.
2. Otherwise, treat headings written as questions (ending in "?") as questions and the paragraphs that follow each heading as the answer.
3. Only when neither exists, derive questions that the article answers directly.
4. Keep the language of the article. Never translate questions or answers.
5. Return at least 2 and at most 10 items. Every question must end with "?".
6. Retain the original wording of the article as much as possible. Do not invent facts, figures, prices, dates or claims that are not in the text.
7. Answers must be plain text, without HTML or markdown, and self-contained.
8. If the article has no material suitable for a FAQ, return an empty list.`

const responseInstruction = `Return ONLY a valid JSON object, with no commentary or code fences, in this format:
{"faq": [{"question": "Question 1?", "answer": "Answer 1"}, {"question": "Question 2?", "answer": "Answer 2"}]}`

// TokenBudget truncates text to a number of model tokens.
type TokenBudget interface {
	Truncate(text string, limit int) string
}

// PromptBuilder composes the provider prompt for one content item.
type PromptBuilder struct {
	basePrompt string
	budget     TokenBudget
	maxTokens  int
}

// NewPromptBuilder returns a builder. basePrompt overrides the built-in instructions
// when non-empty; budget may be nil.
func NewPromptBuilder(basePrompt string, budget TokenBudget, maxTokens int) PromptBuilder {
	return PromptBuilder{basePrompt: strings.TrimSpace(basePrompt), budget: budget, maxTokens: maxTokens}
}

// Build joins the base instructions, the content's title, body and excerpt, and the
// JSON-only response instruction. A request's custom prompt wins over the configured one.
func (b PromptBuilder) Build(req Request) string {
	base := strings.TrimSpace(req.CustomPrompt)
	if base == "" {
		base = b.basePrompt
	}
	if base == "" {
		base = defaultPrompt
	}

	body := strings.TrimSpace(req.Body)
	if b.budget != nil && b.maxTokens > 0 {
		body = b.budget.Truncate(body, b.maxTokens)
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\nTitle: ")
	sb.WriteString(strings.TrimSpace(req.Title))
	sb.WriteString("\n\nContent:\n")
	sb.WriteString(body)
	sb.WriteString("\n\nSummary: ")
	sb.WriteString(strings.TrimSpace(req.Excerpt))
	sb.WriteString("\n\n")
	sb.WriteString(responseInstruction)
	return sb.String()
}
