package faq

import "github.com/yanqian/contenttools/pkg/metrics"

// Item is one question and answer pair.
type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Request carries the content a prompt is built from.
type Request struct {
	ContentID    int64
	Title        string
	Body         string
	Excerpt      string
	CustomPrompt string
}

// Source records which parse stage produced the items.
type Source string

const (
	SourceJSON   Source = "json"
	SourceManual Source = "manual"
	SourceNone   Source = "none"
)

// ParseResult is the outcome of parsing a provider response. An empty Items list is a
// valid negative result, not an error.
type ParseResult struct {
	Items  []Item
	Source Source
}

// Empty reports whether nothing was extracted.
func (r ParseResult) Empty() bool {
	return len(r.Items) == 0
}

// GenerateRequest asks for a FAQ for one stored content item.
type GenerateRequest struct {
	ContentID    int64  `json:"postId"`
	CustomPrompt string `json:"customPrompt"`
}

// GenerateResult is returned for operator review; it is not persisted.
type GenerateResult struct {
	ContentID  int64              `json:"postId"`
	Title      string             `json:"title"`
	Items      []Item             `json:"faq"`
	Source     Source             `json:"source"`
	Model      string             `json:"model,omitempty"`
	DurationMs int64              `json:"durationMs"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// ReviewRow is one successful batch analysis, exported in the wide review format.
type ReviewRow struct {
	URL       string
	ContentID int64
	Title     string
	Items     []Item
}

// FailureRow is one failed row of a batch run.
type FailureRow struct {
	URL       string `csv:"URL" json:"url"`
	ContentID int64  `csv:"Post ID,omitempty" json:"postId,omitempty"`
	Title     string `csv:"Title" json:"title"`
	Code      string `csv:"Error Code" json:"code"`
	Message   string `csv:"Message" json:"message"`
}

// BatchResult summarises a batch URL analysis.
type BatchResult struct {
	Processed     int                `json:"processed"`
	Succeeded     []ReviewRow        `json:"-"`
	Failed        []FailureRow       `json:"failures"`
	SuccessReport string             `json:"successReport,omitempty"`
	ErrorReport   string             `json:"errorReport,omitempty"`
	TokenUsage    metrics.TokenUsage `json:"tokenUsage"`
}

// ApplyReport summarises an apply-reviewed run.
type ApplyReport struct {
	Processed int          `json:"processed"`
	Applied   int          `json:"applied"`
	Failed    []FailureRow `json:"failures"`
}
