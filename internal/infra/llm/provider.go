// Package llm holds the provider-neutral pieces shared by the LLM HTTP clients.
package llm

import (
	"net/url"
	"strings"

	"github.com/yanqian/contenttools/pkg/metrics"
)

// Kind identifies the wire shape spoken by the configured provider.
type Kind string

const (
	// KindOpenAI is any OpenAI-compatible chat-completions endpoint.
	KindOpenAI Kind = "openai"
	// KindGemini is Google's generateContent API.
	KindGemini Kind = "gemini"
)

const (
	geminiKeyPrefix = "AIza"
	geminiHost      = "generativelanguage.googleapis.com"
)

// Completion is the text returned by a provider plus the model that produced it.
type Completion struct {
	Text  string
	Model string
	Usage metrics.TokenUsage
}

// ResolveKind infers the provider from the API key prefix and the endpoint host.
// A Google key selects Gemini even when the endpoint still holds the OpenAI default.
func ResolveKind(apiKey, endpoint string) Kind {
	host := endpointHost(endpoint)
	switch {
	case strings.HasPrefix(strings.TrimSpace(apiKey), geminiKeyPrefix):
		return KindGemini
	case strings.HasSuffix(host, geminiHost):
		return KindGemini
	default:
		return KindOpenAI
	}
}

// ParseKind converts a configured value, returning ok=false for unknown kinds.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindOpenAI:
		return KindOpenAI, true
	case KindGemini:
		return KindGemini, true
	default:
		return "", false
	}
}

func endpointHost(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
