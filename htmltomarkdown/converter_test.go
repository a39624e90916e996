package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts extracted article", func(t *testing.T) {
		t.Parallel()

		html := `<main>
<h1>Article Title</h1>
<p>First paragraph with <strong>bold</strong> and <em>italic</em> text.</p>
<ul><li>one</li><li>two</li></ul>
<blockquote><p>Quoted line.</p></blockquote>
<pre><code class="language-go">fmt.Println("hi")</code></pre>
</main>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "# Article Title")
		assert.Contains(t, md, "**bold**")
		assert.Contains(t, md, "*italic*")
		assert.Contains(t, md, "- one")
		assert.Contains(t, md, "> Quoted line.")
		assert.Contains(t, md, "```go")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Option</th><th>Default</th></tr></thead>
<tbody><tr><td>timeout</td><td>30s</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "| Option")
		assert.Contains(t, md, "timeout")
	})

	t.Run("resolves relative links against the page", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="/docs/setup">setup</a>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "https://example.com/docs/intro")

		require.NoError(t, err)
		assert.Contains(t, md, "[setup](https://example.com/docs/setup)")
	})

	t.Run("keeps relative links without a page URL", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<a href="/docs/setup">setup</a>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "[setup](/docs/setup)")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert(" \n", "")

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})

	t.Run("returns error for invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("<p>x</p>", "not a url")

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})
}

func TestWithFrontmatter(t *testing.T) {
	t.Parallel()

	t.Run("adds source and title", func(t *testing.T) {
		t.Parallel()

		got, err := htmltomarkdown.WithFrontmatter("# Body", "https://example.com/a", "Intro: part 1")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "---\nsource: https://example.com/a\ntitle: 'Intro: part 1'\n---\n\n"), got)
		assert.True(t, strings.HasSuffix(got, "# Body"))
	})

	t.Run("omits empty title", func(t *testing.T) {
		t.Parallel()

		got, err := htmltomarkdown.WithFrontmatter("text", "https://example.com/a", "")

		require.NoError(t, err)
		assert.Equal(t, "---\nsource: https://example.com/a\n---\n\ntext", got)
	})
}
