package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, br, li, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, figcaption"

// PlainText strips markup from an HTML fragment and collapses whitespace.
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return CollapseSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CollapseSpace(html)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockElements).AfterHtml(" ")
	return CollapseSpace(doc.Text())
}

// CollapseSpace joins all whitespace runs into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimWords keeps the first n words of text, appending "..." when it was cut.
func TrimWords(text string, n int) string {
	words := strings.Fields(text)
	if n <= 0 || len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}

// ExcerptOrSummary returns the stored excerpt or the first 30 words of the body.
func (p Post) ExcerptOrSummary() string {
	if e := strings.TrimSpace(p.Excerpt); e != "" {
		return CollapseSpace(e)
	}
	return TrimWords(PlainText(p.Body), 30)
}
