package vivian_test

import (
	"regexp"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *vivian.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include restricts", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/blog/`)}}

		assert.True(t, f.Match("https://example.com/blog/post"))
		assert.False(t, f.Match("https://example.com/about"))
	})

	t.Run("exclude applies after include", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/blog/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/drafts/`)},
		}

		assert.True(t, f.Match("https://example.com/blog/post"))
		assert.False(t, f.Match("https://example.com/blog/drafts/post"))
	})

	t.Run("host scope is case-insensitive", func(t *testing.T) {
		t.Parallel()

		f := (*vivian.URLFilter)(nil).Scoped("Example.com", "")

		assert.True(t, f.Match("https://example.com/a"))
		assert.False(t, f.Match("https://other.com/a"))
	})

	t.Run("path prefix without slash matches the path and below", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{PathPrefix: "/docs"}

		assert.True(t, f.Match("https://example.com/docs"))
		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/docsearch"))
	})

	t.Run("path prefix with slash matches by prefix", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{PathPrefix: "/docs/"}

		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/blog/"))
	})

	t.Run("unparseable URL fails a scoped filter", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{Host: "example.com"}

		assert.False(t, f.Match("http://[::1"))
	})
}

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("no patterns gives nil filter", func(t *testing.T) {
		t.Parallel()

		f, err := vivian.NewURLFilter(nil)

		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("compiles include patterns", func(t *testing.T) {
		t.Parallel()

		f, err := vivian.NewURLFilter([]string{`/guide/`, `/api/`})

		require.NoError(t, err)
		assert.True(t, f.Match("https://example.com/api/x"))
		assert.False(t, f.Match("https://example.com/blog/x"))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := vivian.NewURLFilter([]string{"("})

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})
}

func TestURLFilter_Scoped(t *testing.T) {
	t.Parallel()

	t.Run("keeps patterns and does not modify the receiver", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/a`)}}

		scoped := f.Scoped("example.com", "/docs")

		assert.Equal(t, "example.com", scoped.Host)
		assert.Equal(t, "/docs", scoped.PathPrefix)
		assert.Len(t, scoped.Include, 1)
		assert.Empty(t, f.Host)
		assert.True(t, scoped.Match("https://example.com/docs/a"))
		assert.False(t, scoped.Match("https://example.com/docs/b"))
	})

	t.Run("empty arguments keep the existing scope", func(t *testing.T) {
		t.Parallel()

		f := &vivian.URLFilter{Host: "example.com"}

		assert.Equal(t, "example.com", f.Scoped("", "").Host)
	})
}
