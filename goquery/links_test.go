package goquery_test

import (
	"regexp"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("keeps same-host links below the base path", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
<a href="intro.html">Intro</a>
<a href="/docs/guide/setup.html#install">  Setup
  guide </a>
<a href="/docs/guide/setup.html">Setup again</a>
<a href="/blog/post.html">Blog</a>
<a href="https://other.example.org/docs/guide/x.html">Elsewhere</a>
<a href="#top">Top</a>
<a href="index.html">Self</a>
<a href="mailto:me@example.com">Mail</a>
<a href="javascript:void(0)">Script</a>
<a href="">Empty</a>
</body></html>`

		links, err := goquery.ExtractLinks(page, "https://example.com/docs/guide/index.html", nil)

		require.NoError(t, err)
		assert.Equal(t, []vivian.Link{
			{URL: "https://example.com/docs/guide/intro.html", Text: "Intro"},
			{URL: "https://example.com/docs/guide/setup.html", Text: "Setup guide"},
		}, links)
	})

	t.Run("root base keeps all same-host links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks(`<a href="/a">A</a><a href="b/c">C</a>`, "https://example.com", nil)

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://example.com/a", links[0].URL)
		assert.Equal(t, "https://example.com/b/c", links[1].URL)
	})

	t.Run("applies URL filter", func(t *testing.T) {
		t.Parallel()

		filter := &vivian.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/old/`)}}

		links, err := goquery.ExtractLinks(`<a href="/a">A</a><a href="/old/b">B</a><a href="https://other.com/c">C</a>`, "https://example.com/", filter)

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://example.com/a", links[0].URL)
	})

	t.Run("no links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks(`<p>nothing</p>`, "https://example.com/", nil)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractLinks(`<a href="/a">A</a>`, "not a url", nil)

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})
}
