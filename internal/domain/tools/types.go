package tools

// Issue is a warning or error tied to one CSV line.
type Issue struct {
	Line    int    `json:"line,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Report summarises one bulk tool run.
type Report struct {
	Tool      string         `json:"tool"`
	Processed int            `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Warnings  []Issue        `json:"warnings"`
	Errors    []Issue        `json:"errors"`
	Details   map[string]int `json:"details,omitempty"`
}

func newReport(tool string) Report {
	return Report{Tool: tool, Warnings: []Issue{}, Errors: []Issue{}}
}

func (r *Report) warn(line int, value, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Line: line, Value: value, Message: sprintf(format, args...)})
}

func (r *Report) fail(line int, value, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Line: line, Value: value, Message: sprintf(format, args...)})
}

func (r *Report) count(key string, n int) {
	if r.Details == nil {
		r.Details = make(map[string]int)
	}
	r.Details[key] += n
}

// Detail keys reported by the alt text tool.
const (
	DetailImagesUpdated  = "imagesUpdated"
	DetailRowsSkipped    = "rowsSkipped"
	DetailImagesNotFound = "imagesNotFound"
	DetailTagsUpdated    = "tagsUpdated"
	DetailPostsUpdated   = "postsUpdated"
)

// Export field names.
const (
	FieldMetaTitle       = "meta_title"
	FieldMetaDescription = "meta_description"
	FieldPostTitle       = "post_title"
	FieldPostHTML        = "post_html"
	FieldAuthor          = "author"
	FieldPublishDate     = "publish_date"
	FieldURL             = "url"
	FieldCategories      = "categories"
	FieldExcerpt         = "excerpt"
)

// DefaultExportFields is used when a request selects no known field.
var DefaultExportFields = []string{
	FieldMetaTitle, FieldMetaDescription, FieldPostTitle, FieldPostHTML,
	FieldAuthor, FieldPublishDate, FieldURL,
}

var exportLabels = map[string]string{
	FieldMetaTitle:       "Meta Title",
	FieldMetaDescription: "Meta Description",
	FieldPostTitle:       "Post Title",
	FieldPostHTML:        "Post HTML",
	FieldAuthor:          "Author",
	FieldPublishDate:     "Publish Date",
	FieldURL:             "URL",
	FieldCategories:      "Categories",
	FieldExcerpt:         "Excerpt",
}
