package faq

import (
	"html"
	"strings"

	"github.com/yanqian/contenttools/internal/domain/content"
)

// SanitizeResponse trims raw provider text and decodes HTML entities.
func SanitizeResponse(raw string) string {
	return strings.TrimSpace(html.UnescapeString(strings.TrimSpace(raw)))
}

// SanitizeField prepares operator-supplied FAQ text for storage: entities are
// decoded, then markup is stripped so only the text survives.
func SanitizeField(raw string) string {
	return content.PlainText(SanitizeResponse(raw))
}
