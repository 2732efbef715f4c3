// Package tokenizer budgets prompt input by model tokens.
package tokenizer

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

var offlineOnce sync.Once

// useOfflineRanks points tiktoken at the BPE files embedded in the loader module so
// loading an encoding never reaches the network.
func useOfflineRanks() {
	offlineOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
}

// Tiktoken truncates text to a token budget using the model's BPE encoding. When the
// encoding cannot be loaded it approximates one token per word.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// New loads the encoding for model from embedded rank files, falling back to
// cl100k_base and then to word counts.
func New(model string) *Tiktoken {
	useOfflineRanks()
	model = strings.TrimSpace(model)
	if model != "" {
		if enc, err := tiktoken.EncodingForModel(model); err == nil {
			return &Tiktoken{enc: enc}
		}
	}
	if enc, err := tiktoken.GetEncoding(fallbackEncoding); err == nil {
		return &Tiktoken{enc: enc}
	}
	return &Tiktoken{}
}

// Count returns the number of tokens in text.
func (t *Tiktoken) Count(text string) int {
	if t == nil || t.enc == nil {
		return len(strings.Fields(text))
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate keeps at most limit tokens of text. A non-positive limit disables truncation.
func (t *Tiktoken) Truncate(text string, limit int) string {
	if limit <= 0 || text == "" {
		return text
	}
	if t == nil || t.enc == nil {
		words := strings.Fields(text)
		if len(words) <= limit {
			return text
		}
		return strings.Join(words[:limit], " ")
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= limit {
		return text
	}
	return strings.ToValidUTF8(t.enc.Decode(tokens[:limit]), "")
}
