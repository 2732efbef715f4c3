package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	got := PlainText("<h2>Title</h2>\n<p>First &amp; <strong>second</strong></p><script>alert(1)</script>")
	require.Equal(t, "Title First & second", got)
	require.Equal(t, "no markup here", PlainText("  no   markup\nhere "))
}

func TestTrimWords(t *testing.T) {
	require.Equal(t, "one two three", TrimWords("one two three", 3))
	require.Equal(t, "one two...", TrimWords("one two three", 2))
	require.Equal(t, "", TrimWords("   ", 5))
}

func TestExcerptOrSummary(t *testing.T) {
	post := Post{Excerpt: "  Short\nexcerpt "}
	require.Equal(t, "Short excerpt", post.ExcerptOrSummary())

	body := ""
	for i := 0; i < 40; i++ {
		body += "word "
	}
	post = Post{Body: "<p>" + body + "</p>"}
	summary := post.ExcerptOrSummary()
	require.Len(t, summary, len("word")*30+29+3)
	require.Contains(t, summary, "...")
}

func TestResolvePath(t *testing.T) {
	cases := map[string]string{
		"https://site.test/":                     "",
		"https://site.test":                      "",
		"https://site.test/a/b/?x=1#y":           "a/b",
		"https://site.test/caf%C3%A9/":           "café",
		"https://site.test/2024/05/slug-da-nota": "2024/05/slug-da-nota",
	}
	for in, want := range cases {
		require.Equal(t, want, ResolvePath(in), in)
	}
}

func TestSiteOwns(t *testing.T) {
	site := Site{URL: "https://site.test/"}
	require.True(t, site.Owns("https://site.test/post"))
	require.True(t, site.Owns("https://site.test"))
	require.False(t, site.Owns("https://site.test.evil.com/post"))
	require.False(t, site.Owns("https://other.test/post"))
	require.True(t, Site{}.Owns("https://anything.test/"))
}

func TestValidURL(t *testing.T) {
	require.True(t, ValidURL("https://site.test/x"))
	require.True(t, ValidURL(" http://site.test "))
	require.False(t, ValidURL("site.test/x"))
	require.False(t, ValidURL("ftp://site.test/x"))
	require.False(t, ValidURL(""))
}
