package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestWordFallback(t *testing.T) {
	tok := &Tiktoken{}
	require.Equal(t, 3, tok.Count("one two  three"))
	require.Equal(t, "one two", tok.Truncate("one two three", 2))
	require.Equal(t, "one two three", tok.Truncate("one two three", 0))
}

func TestTruncateKeepsShortText(t *testing.T) {
	tok := &Tiktoken{}
	text := "short text"
	require.Equal(t, text, tok.Truncate(text, 10))
}

func TestNilTokenizerCounts(t *testing.T) {
	var tok *Tiktoken
	require.Equal(t, 2, tok.Count("a b"))
	require.True(t, strings.HasPrefix(tok.Truncate("a b c", 1), "a"))
}

func TestNewLoadsEncodingOffline(t *testing.T) {
	for _, model := range []string{"gpt-4o-mini", "gpt-3.5-turbo", "unknown-model", ""} {
		t.Run(model, func(t *testing.T) {
			tok := New(model)
			require.NotNil(t, tok.enc)
			require.Equal(t, 2, tok.Count("hello world"))
		})
	}
}

func TestTruncateWithEncoding(t *testing.T) {
	tok := New("gpt-4o-mini")
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)

	cut := tok.Truncate(text, 5)
	require.True(t, strings.HasPrefix(text, cut))
	require.NotEmpty(t, cut)
	require.LessOrEqual(t, tok.Count(cut), 5)
	require.Equal(t, text, tok.Truncate(text, tok.Count(text)))

	accented := strings.Repeat("ação é ótima ", 40)
	require.True(t, utf8.ValidString(tok.Truncate(accented, 7)))
}
