package faq

import (
	"strings"
	"unicode"
)

// Language is the verdict of the stop-word detector.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt"
	LanguageUnknown    Language = "unknown"
)

const (
	minLanguageMatches = 4
	languageMajority   = 0.6
)

var englishStopWords = wordSet(
	"the", "and", "is", "are", "was", "were", "of", "to", "in", "for", "with", "that",
	"this", "what", "how", "does", "can", "you", "your", "it", "on", "be", "or", "an",
	"by", "from", "which", "why", "when", "where", "will", "should", "have", "has",
	"not", "at", "there", "their", "about", "i", "my",
)

var portugueseStopWords = wordSet(
	"o", "os", "as", "de", "da", "das", "dos", "que", "e", "é", "em", "um", "uma",
	"para", "com", "não", "por", "como", "mais", "se", "no", "na", "nos", "nas", "qual",
	"quais", "quando", "onde", "porque", "seu", "sua", "ao", "à", "são", "pode",
	"posso", "isso", "este", "esta", "também", "ou", "eu", "meu", "minha",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// DetectLanguage counts English and Portuguese stop words in text. It answers only
// with more than three matches and a clear majority; otherwise LanguageUnknown.
func DetectLanguage(text string) Language {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var en, pt int
	for _, w := range words {
		if _, ok := englishStopWords[w]; ok {
			en++
		}
		if _, ok := portugueseStopWords[w]; ok {
			pt++
		}
	}
	total := en + pt
	if total < minLanguageMatches {
		return LanguageUnknown
	}
	switch {
	case float64(en) >= float64(total)*languageMajority:
		return LanguageEnglish
	case float64(pt) >= float64(total)*languageMajority:
		return LanguagePortuguese
	default:
		return LanguageUnknown
	}
}
