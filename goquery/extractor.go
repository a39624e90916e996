// Package goquery implements HTML sanitization, main-content location and
// text extraction on top of goquery and golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leocbehe/vivian"
)

// Ensure Extractor implements vivian.Extractor at compile time.
var _ vivian.Extractor = (*Extractor)(nil)

// Extractor runs the sanitize, locate and extract stages over a page.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	sanitizer  *Sanitizer
	aggressive bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithAggressiveCleaning enables the pattern and ad-size sanitizer passes.
func WithAggressiveCleaning(on bool) Option {
	return func(e *Extractor) {
		e.aggressive = on
	}
}

// WithSanitizer replaces the default Sanitizer.
func WithSanitizer(s *Sanitizer) Option {
	return func(e *Extractor) {
		e.sanitizer = s
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{sanitizer: NewSanitizer()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML, sanitizes it, removes non-content chrome, locates
// the main content and its title, drops everything before the title and
// returns the remaining content. Pages without a recognizable content area
// or title fall back to the body or the whole document.
func (e *Extractor) Extract(rawHTML string) (*vivian.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &vivian.ExtractResult{}, nil
	}

	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	e.sanitizer.Sanitize(doc, e.aggressive)
	RemoveNonContent(doc)

	root := LocateMainContent(doc)
	title := LocateTitle(root)
	TruncateBeforeTitle(root, title)

	contentHTML, err := outerHTML(doc, root)
	if err != nil {
		return nil, vivian.WrapError(vivian.EINTERNAL, err, "cannot render content")
	}

	return &vivian.ExtractResult{
		Title:       ExtractText(title),
		ContentHTML: contentHTML,
		Text:        ExtractText(root),
	}, nil
}

// Parse parses an HTML document.
func Parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, vivian.WrapError(vivian.EINVALID, err, "failed to parse HTML")
	}
	return doc, nil
}

func outerHTML(doc *goquery.Document, root *goquery.Selection) (string, error) {
	if root == doc.Selection {
		return doc.Html()
	}
	return goquery.OuterHtml(root)
}
