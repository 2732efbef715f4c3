package content

import "time"

// Type is the post type of a content item.
type Type string

const (
	TypePost       Type = "post"
	TypePage       Type = "page"
	TypeAttachment Type = "attachment"
)

// Status is the publication status of a content item.
type Status string

const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
	StatusTrash   Status = "trash"
)

// Meta keys written by the tools and the FAQ service.
const (
	MetaImageAlt       = "_wp_attachment_image_alt"
	MetaSEOTitle       = "_yoast_wpseo_title"
	MetaSEODescription = "_yoast_wpseo_metadesc"
	MetaFAQStructured  = "_fu_faq_structured_data"
)

// Post is a content item: a post, a page or a media attachment.
type Post struct {
	ID          int64     `json:"id"`
	Type        Type      `json:"type"`
	Status      Status    `json:"status"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Excerpt     string    `json:"excerpt"`
	URL         string    `json:"url"`
	Slug        string    `json:"slug"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Categories  []string  `json:"categories"`
}

// Published reports whether the post is publicly visible.
func (p Post) Published() bool {
	return p.Status == StatusPublish
}

// Category is a taxonomy term assigned to posts.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
