package tools

import (
	"context"
	"fmt"
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/infra/csvio"
)

var altAttrPattern = regexp.MustCompile(`(?i)\balt\s*=\s*(?:"[^"]*"|'[^']*')`)

// UpdateAltText sets the alt text of media attachments from (image_url, alt_text)
// rows and rewrites the alt attribute of matching <img> tags in published posts.
func (s *service) UpdateAltText(ctx context.Context, records [][]string) (Report, error) {
	report := newReport("alt-text")
	for i := 1; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		line, record := lineOf(i), records[i]
		report.Processed++

		if len(record) < 2 {
			report.fail(line, "", "not enough columns, expected image URL and alt text")
			report.count(DetailRowsSkipped, 1)
			continue
		}
		imageURL, alt := csvio.Field(record, 0), csvio.Field(record, 1)
		if imageURL == "" {
			report.fail(line, "", "image URL is empty")
			report.count(DetailRowsSkipped, 1)
			continue
		}

		attachment, ok, err := s.store.FindAttachmentByURL(ctx, imageURL)
		if err != nil {
			report.fail(line, imageURL, "image lookup failed: %v", err)
			report.count(DetailRowsSkipped, 1)
			continue
		}
		if !ok {
			report.fail(line, imageURL, "image not found in the media library")
			report.count(DetailImagesNotFound, 1)
			continue
		}
		if attachment.Type != content.TypeAttachment {
			report.fail(line, imageURL, "URL belongs to post %d, which is not a media attachment", attachment.ID)
			report.count(DetailImagesNotFound, 1)
			continue
		}
		if err := s.store.SetMeta(ctx, attachment.ID, content.MetaImageAlt, alt); err != nil {
			report.fail(line, imageURL, "failed to save alt text: %v", err)
			report.count(DetailRowsSkipped, 1)
			continue
		}
		report.Succeeded++
		report.count(DetailImagesUpdated, 1)

		tags, posts, err := s.rewriteReferencingPosts(ctx, attachment.ID, imageURL, alt)
		if err != nil {
			report.warn(line, imageURL, "alt text saved but posts were not updated: %v", err)
		}
		report.count(DetailTagsUpdated, tags)
		report.count(DetailPostsUpdated, posts)
	}
	s.logRun(report)
	return report, nil
}

func (s *service) rewriteReferencingPosts(ctx context.Context, attachmentID int64, imageURL, alt string) (int, int, error) {
	filename := path.Base(content.StripQuery(imageURL))
	if filename == "" || filename == "." || filename == "/" {
		return 0, 0, nil
	}
	posts, err := s.store.FindReferencing(ctx, filename)
	if err != nil {
		return 0, 0, err
	}
	tags, updated := 0, 0
	for _, post := range posts {
		body, n := RewriteImageAlt(post.Body, attachmentID, alt)
		if n == 0 || body == post.Body {
			continue
		}
		if err := s.store.UpdateBody(ctx, post.ID, body); err != nil {
			return tags, updated, fmt.Errorf("update post %d: %w", post.ID, err)
		}
		tags += n
		updated++
	}
	return tags, updated, nil
}

// RewriteImageAlt sets alt on every <img> whose class list has wp-image-{id}. It
// returns the new body and the number of tags changed.
func RewriteImageAlt(body string, attachmentID int64, alt string) (string, int) {
	tagPattern := regexp.MustCompile(fmt.Sprintf(
		`(?i)<img\b[^>]*\bclass\s*=\s*(?:"[^"]*\bwp-image-%d\b[^"]*"|'[^']*\bwp-image-%d\b[^']*')[^>]*>`,
		attachmentID, attachmentID,
	))
	attr := `alt="` + html.EscapeString(alt) + `"`
	changed := 0
	out := tagPattern.ReplaceAllStringFunc(body, func(tag string) string {
		var updated string
		if loc := altAttrPattern.FindStringIndex(tag); loc != nil {
			updated = tag[:loc[0]] + attr + tag[loc[1]:]
		} else {
			updated = strings.Replace(tag, "<img", "<img "+attr, 1)
			if updated == tag {
				updated = tag[:4] + " " + attr + tag[4:]
			}
		}
		if updated != tag {
			changed++
		}
		return updated
	})
	return out, changed
}
