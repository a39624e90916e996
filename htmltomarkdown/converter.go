// Package htmltomarkdown renders extracted content as Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/leocbehe/vivian"
	"gopkg.in/yaml.v3"
)

// Ensure Converter implements vivian.Converter at compile time.
var _ vivian.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", vivian.Errorf(vivian.EINVALID, "empty HTML input")
	}

	if pageURL == "" {
		md, err := c.conv.ConvertString(html)
		if err != nil {
			return "", vivian.WrapError(vivian.EINTERNAL, err, "cannot convert HTML to markdown")
		}
		return md, nil
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", vivian.Errorf(vivian.EINVALID, "invalid page URL %q", pageURL)
	}
	md, err := c.conv.ConvertString(html, converter.WithDomain(u.Scheme+"://"+u.Host))
	if err != nil {
		return "", vivian.WrapError(vivian.EINTERNAL, err, "cannot convert HTML to markdown")
	}
	return md, nil
}

type frontmatter struct {
	Source string `yaml:"source"`
	Title  string `yaml:"title,omitempty"`
}

// WithFrontmatter prefixes a Markdown document with a YAML header naming its
// source URL and title.
func WithFrontmatter(md, sourceURL, title string) (string, error) {
	header, err := yaml.Marshal(frontmatter{Source: sourceURL, Title: title})
	if err != nil {
		return "", vivian.WrapError(vivian.EINTERNAL, err, "cannot encode frontmatter")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(md)
	return b.String(), nil
}
