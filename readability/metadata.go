// Package readability reads page metadata with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/leocbehe/vivian"
)

// Ensure MetadataReader implements vivian.MetadataReader at compile time.
var _ vivian.MetadataReader = (*MetadataReader)(nil)

// MetadataReader wraps go-readability to read the title, byline, excerpt and
// site name of a page. The content it extracts is discarded; main content
// comes from the goquery pipeline.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata parses rawHTML. pageURL may be empty.
func (r *MetadataReader) ReadMetadata(rawHTML, pageURL string) (*vivian.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, vivian.Errorf(vivian.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, vivian.WrapError(vivian.EINVALID, err, "invalid page URL %q", pageURL)
		}
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, vivian.WrapError(vivian.EINVALID, err, "failed to read page metadata")
	}

	return &vivian.PageMetadata{
		Title:    vivian.NormalizeWhitespace(article.Title),
		Byline:   vivian.NormalizeWhitespace(article.Byline),
		Excerpt:  vivian.NormalizeWhitespace(article.Excerpt),
		SiteName: vivian.NormalizeWhitespace(article.SiteName),
	}, nil
}
