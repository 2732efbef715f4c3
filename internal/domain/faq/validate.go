package faq

import "strings"

const maxReportedQuestion = 100

// Validator checks generated FAQs before they are offered for review.
type Validator struct {
	MinItems int
}

// NewValidator returns a validator requiring minItems valid entries.
func NewValidator(minItems int) Validator {
	if minItems <= 0 {
		minItems = defaultMinItems
	}
	return Validator{MinItems: minItems}
}

// Validate returns the first rule violation as a *ValidationError, or nil. Items are
// never modified.
func (v Validator) Validate(items []Item, source string) error {
	if violations := v.Inspect(items, source); len(violations) > 0 {
		return violations[0]
	}
	return nil
}

// Inspect returns every violation in check order: item count, then per item the
// question mark and language rules, then the count of items passing both.
func (v Validator) Inspect(items []Item, source string) []*ValidationError {
	want := v.MinItems
	if want <= 0 {
		want = defaultMinItems
	}

	var violations []*ValidationError
	if len(items) < want {
		violations = append(violations, &ValidationError{Kind: InsufficientFAQ, Count: len(items), Want: want})
	}

	sourceLang := DetectLanguage(source)
	valid := 0
	for _, item := range items {
		question := strings.TrimSpace(item.Question)
		if !strings.HasSuffix(question, "?") {
			violations = append(violations, &ValidationError{Kind: InvalidQuestionFormat, Question: truncateRunes(question, maxReportedQuestion)})
			continue
		}
		if questionLang := DetectLanguage(question); mismatched(sourceLang, questionLang) {
			violations = append(violations, &ValidationError{
				Kind:             LanguageMismatch,
				Question:         truncateRunes(question, maxReportedQuestion),
				ContentLanguage:  sourceLang,
				QuestionLanguage: questionLang,
			})
			continue
		}
		if strings.TrimSpace(item.Answer) == "" {
			continue
		}
		valid++
	}

	if len(items) >= want && valid < want {
		violations = append(violations, &ValidationError{Kind: InsufficientValidQuestions, Count: valid, Want: want})
	}
	return violations
}

func mismatched(a, b Language) bool {
	return a != LanguageUnknown && b != LanguageUnknown && a != b
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
