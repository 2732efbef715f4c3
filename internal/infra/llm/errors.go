package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse signals a 200 response missing the expected text path.
var ErrInvalidResponse = errors.New("provider response missing expected content")

// APIError is a transport failure or a non-200 provider response.
type APIError struct {
	Provider Kind
	Status   int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Provider))
	b.WriteString(" api error")
	if e.Status > 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ProviderMessage extracts error.message from a provider error body. Both OpenAI and
// Gemini use the {"error":{"message":...}} envelope.
func ProviderMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Error.Message) != "" {
		return strings.TrimSpace(envelope.Error.Message)
	}
	return "unknown provider error"
}
