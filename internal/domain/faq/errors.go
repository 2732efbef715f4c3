package faq

import (
	"errors"
	"fmt"

	"github.com/yanqian/contenttools/internal/infra/llm"
	apperrors "github.com/yanqian/contenttools/pkg/errors"
)

// Error codes carried by AppError values returned from this package.
const (
	CodeConfiguration   = "configuration_error"
	CodeNotFound        = "not_found"
	CodeAPI             = "api_error"
	CodeInvalidResponse = "invalid_response"
	CodeNoFAQFound      = "no_faq_found"
	CodeValidation      = "validation_error"
	CodeInvalidInput    = "invalid_input"
	CodeStore           = "store_error"
)

// ValidationKind names the rule a generated FAQ broke.
type ValidationKind string

const (
	InsufficientFAQ            ValidationKind = "insufficient_faq"
	InvalidQuestionFormat      ValidationKind = "invalid_question_format"
	LanguageMismatch           ValidationKind = "language_mismatch"
	InsufficientValidQuestions ValidationKind = "insufficient_valid_questions"
)

// ValidationError describes one rule violation.
type ValidationError struct {
	Kind ValidationKind
	// Question is the offending question, cut to 100 characters.
	Question string
	// Count is the number of items (or valid items) seen, for count rules.
	Count int
	// Want is the required minimum, for count rules.
	Want int
	// ContentLanguage and QuestionLanguage are set for LanguageMismatch.
	ContentLanguage  Language
	QuestionLanguage Language
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InsufficientFAQ:
		return fmt.Sprintf("faq has %d items, at least %d required", e.Count, e.Want)
	case InvalidQuestionFormat:
		return fmt.Sprintf("question does not end with a question mark: %q", e.Question)
	case LanguageMismatch:
		return fmt.Sprintf("question language %s differs from content language %s: %q", e.QuestionLanguage, e.ContentLanguage, e.Question)
	case InsufficientValidQuestions:
		return fmt.Sprintf("only %d valid questions, at least %d required", e.Count, e.Want)
	default:
		return string(e.Kind)
	}
}

// ValidationKindOf returns the kind of the ValidationError inside err, if any.
func ValidationKindOf(err error) (ValidationKind, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return "", false
}

func providerError(err error) error {
	if errors.Is(err, llm.ErrInvalidResponse) {
		return apperrors.Wrap(CodeInvalidResponse, "provider returned an unexpected response", err)
	}
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apperrors.Wrap(CodeAPI, "provider request failed", err)
	}
	return apperrors.Wrap(CodeAPI, "provider call failed", err)
}
