package faq

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")
	bracePattern       = regexp.MustCompile(`(?s)\{.*\}`)
)

const minBraceMatch = 20

// ExtractJSON finds a JSON document embedded in sanitized provider text. Candidates are
// tried in order: a fenced code block, a leading [...] list (whole, then cut at its
// closing bracket), the widest {...} span, the whole string. When
// none decodes, each is repaired by cutting it at the close of its first top-level
// object. The second result is false when nothing decodes.
func ExtractJSON(text string) (any, bool) {
	candidates := jsonCandidates(text)
	for _, c := range candidates {
		if v, ok := decodeJSON(c); ok {
			return v, true
		}
	}
	for _, c := range append(candidates, text) {
		repaired, ok := repairObject(c)
		if !ok {
			continue
		}
		if v, ok := decodeJSON(repaired); ok {
			return v, true
		}
	}
	return nil, false
}

func jsonCandidates(text string) []string {
	var out []string
	if m := fencedBlockPattern.FindStringSubmatch(text); m != nil {
		if block := strings.TrimSpace(m[1]); block != "" {
			out = append(out, block)
		}
	}

	trimmed := strings.TrimSpace(text)
	whole := ""
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		whole = trimmed
	}
	// A bare top-level list contains {...} spans of its own; try it whole first,
	// then cut at its closing bracket when prose follows it.
	if strings.HasPrefix(whole, "[") {
		out = append(out, whole)
		whole = ""
	}
	if strings.HasPrefix(trimmed, "[") {
		if list, ok := cutBalanced(trimmed, '['); ok {
			out = append(out, list)
		}
	}
	if m := bracePattern.FindString(text); len(m) >= minBraceMatch {
		out = append(out, m)
	}
	if whole != "" {
		out = append(out, whole)
	}
	return out
}

func decodeJSON(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

// repairObject drops everything before the first '{', cuts the text where that object
// closes, and removes trailing commas before closing brackets.
func repairObject(s string) (string, bool) {
	return cutBalanced(s, '{')
}

// cutBalanced starts at the first open byte and cuts where the container it opens
// closes. Both bracket kinds count toward depth; brackets inside strings do not.
func cutBalanced(s string, open byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	s = s[start:]

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return stripTrailingCommas(s[:i+1]), true
			}
		}
	}
	return "", false
}

func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = true
		}
		if ch == ',' {
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
