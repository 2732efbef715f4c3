package gemini

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/yanqian/contenttools/internal/infra/llm"
)

// modelFallback consumes an ordered candidate list, remembering why each rejected
// model was skipped so the exhausted state can report all of them at once.
type modelFallback struct {
	candidates []string
	pos        int
	rejected   []string
}

func newModelFallback(candidates []string) *modelFallback {
	return &modelFallback{candidates: candidates}
}

func (f *modelFallback) next() (string, bool) {
	if f.pos >= len(f.candidates) {
		return "", false
	}
	model := f.candidates[f.pos]
	f.pos++
	return model, true
}

func (f *modelFallback) reject(model, reason string) {
	f.rejected = append(f.rejected, fmt.Sprintf("%s (%s)", model, reason))
}

func (f *modelFallback) exhausted() error {
	msg := "no candidate model available"
	if len(f.rejected) > 0 {
		msg += ": " + strings.Join(f.rejected, "; ")
	}
	return &llm.APIError{Provider: llm.KindGemini, Status: http.StatusNotFound, Message: msg}
}
