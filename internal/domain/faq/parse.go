package faq

// Parse turns raw provider text into items: sanitize, extract JSON, normalize, and
// fall back to the line parser when either stage yields nothing.
func Parse(raw string) ParseResult {
	text := SanitizeResponse(raw)
	if text == "" {
		return ParseResult{Source: SourceNone}
	}
	if v, ok := ExtractJSON(text); ok {
		if items := NormalizeItems(v); len(items) > 0 {
			return ParseResult{Items: items, Source: SourceJSON}
		}
	}
	if items := ParseManual(text); len(items) > 0 {
		return ParseResult{Items: items, Source: SourceManual}
	}
	return ParseResult{Source: SourceNone}
}
