package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveKind(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		endpoint string
		want     Kind
	}{
		{name: "openai key and endpoint", key: "sk-123", endpoint: "https://api.openai.com/v1/chat/completions", want: KindOpenAI},
		{name: "google key prefix", key: "AIzaSyXXX", endpoint: "", want: KindGemini},
		{name: "google key with default openai endpoint", key: "AIzaSyXXX", endpoint: "https://api.openai.com/v1/chat/completions", want: KindGemini},
		{name: "gemini endpoint", key: "token", endpoint: "https://generativelanguage.googleapis.com/v1beta", want: KindGemini},
		{name: "self hosted compatible", key: "local", endpoint: "http://localhost:11434/v1", want: KindOpenAI},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ResolveKind(tc.key, tc.endpoint))
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind(" Gemini ")
	require.True(t, ok)
	require.Equal(t, KindGemini, kind)
	_, ok = ParseKind("anthropic")
	require.False(t, ok)
}

func TestProviderMessage(t *testing.T) {
	require.Equal(t, "Invalid API key", ProviderMessage([]byte(`{"error":{"message":"Invalid API key","code":401}}`)))
	require.Equal(t, "unknown provider error", ProviderMessage([]byte(`<html>bad gateway</html>`)))
}

func TestAPIErrorFormatting(t *testing.T) {
	err := &APIError{Provider: KindOpenAI, Status: 429, Message: "rate limited"}
	require.Equal(t, "openai api error (status 429): rate limited", err.Error())

	cause := errors.New("dial tcp: timeout")
	transport := &APIError{Provider: KindGemini, Err: cause}
	require.ErrorIs(t, transport, cause)
}
