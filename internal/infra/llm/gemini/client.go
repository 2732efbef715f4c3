// Package gemini talks to Google's generateContent API, walking an ordered list of
// candidate models until one of them exists for the configured key.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/yanqian/contenttools/internal/infra/llm"
	"github.com/yanqian/contenttools/pkg/metrics"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultVersion = "v1beta"
	defaultTimeout = 60 * time.Second
)

var versionSegment = regexp.MustCompile(`^v\d+[a-z0-9]*$`)

// DefaultModels is the fallback order used when no model list is configured.
var DefaultModels = []string{
	"gemini-3-flash-preview",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateContentRequest is the request body for models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// GenerateContentResponse is the subset of the response this client reads.
type GenerateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	Models      []string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client performs generateContent calls with model fallback.
type Client struct {
	apiKey      string
	baseURL     string
	models      []string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient constructs a Gemini client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	models := cleanModels(opts.Models)
	if len(models) == 0 {
		models = append([]string(nil), DefaultModels...)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     baseURL,
		models:      models,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		httpClient:  httpClient,
		logger:      logger.With("component", "llm.gemini"),
	}, nil
}

// BaseURLFromEndpoint reduces a configured endpoint to the API base the client
// appends models/{model}:generateContent to. Anything after the version segment
// (a full :generateContent URL, for instance) is dropped, and an endpoint without
// a version segment gets v1beta. Unparseable input yields "" so the default applies.
func BaseURLFromEndpoint(endpoint string) string {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	kept := []string{}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		kept = append(kept, seg)
		if versionSegment.MatchString(seg) {
			return u.Scheme + "://" + u.Host + "/" + strings.Join(kept, "/")
		}
	}
	return u.Scheme + "://" + u.Host + "/" + defaultVersion
}

// Models returns the candidate order this client walks.
func (c *Client) Models() []string {
	return append([]string(nil), c.models...)
}

// Complete sends prompt to the first candidate model that exists. A 404 moves on to
// the next candidate; any other failure ends the call.
func (c *Client) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	payload, err := json.Marshal(GenerateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	})
	if err != nil {
		return llm.Completion{}, fmt.Errorf("encode generate content request: %w", err)
	}

	fallback := newModelFallback(c.models)
	for model, ok := fallback.next(); ok; model, ok = fallback.next() {
		status, body, err := c.post(ctx, model, payload)
		if err != nil {
			return llm.Completion{}, &llm.APIError{Provider: llm.KindGemini, Message: "request " + model, Err: err}
		}
		switch status {
		case http.StatusOK:
			return decodeCompletion(model, body)
		case http.StatusNotFound:
			fallback.reject(model, llm.ProviderMessage(body))
			c.logger.Warn("gemini model unavailable, trying next candidate", "model", model)
		default:
			return llm.Completion{}, &llm.APIError{
				Provider: llm.KindGemini,
				Status:   status,
				Message:  fmt.Sprintf("%s: %s", model, llm.ProviderMessage(body)),
			}
		}
	}
	return llm.Completion{}, fallback.exhausted()
}

func (c *Client) post(ctx context.Context, model string, payload []byte) (int, []byte, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build generate content request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	limit := int64(4 << 10)
	if resp.StatusCode == http.StatusOK {
		limit = 8 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return 0, nil, fmt.Errorf("read generate content response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func decodeCompletion(model string, body []byte) (llm.Completion, error) {
	var resp GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return llm.Completion{}, fmt.Errorf("%w: decode generate content: %v", llm.ErrInvalidResponse, err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return llm.Completion{}, llm.ErrInvalidResponse
	}
	return llm.Completion{
		Text:  resp.Candidates[0].Content.Parts[0].Text,
		Model: model,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

func cleanModels(models []string) []string {
	out := make([]string, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
