// Package pdf extracts page text from PDF documents.
package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/leocbehe/vivian"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Ensure TextExtractor implements vivian.PDFTextExtractor at compile time.
var _ vivian.PDFTextExtractor = (*TextExtractor)(nil)

// TextExtractor validates a document with pdfcpu and reads the text of each
// page with ledongthuc/pdf, which decodes simple font encodings and
// ToUnicode CMaps.
type TextExtractor struct {
	conf *model.Configuration
}

// NewTextExtractor creates a new TextExtractor. pdfcpu's user config
// directory is not used.
func NewTextExtractor() *TextExtractor {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &TextExtractor{conf: conf}
}

// ExtractPages returns the text of each page in page order. Pages without
// text yield empty strings.
func (e *TextExtractor) ExtractPages(content []byte) ([]string, error) {
	count, err := e.validate(content)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, vivian.WrapError(vivian.EINVALID, err, "failed to read PDF")
	}
	if n := r.NumPage(); n < count {
		count = n
	}

	pages := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		text, err := pageText(r.Page(i))
		if err != nil {
			return nil, vivian.WrapError(vivian.EINVALID, err, "failed to read page %d", i)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// validate checks the document structure and returns its page count.
func (e *TextExtractor) validate(content []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(content), e.conf)
	if err != nil {
		return 0, vivian.WrapError(vivian.EINVALID, err, "failed to parse PDF")
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, vivian.WrapError(vivian.EINVALID, err, "invalid PDF")
	}
	return ctx.PageCount, nil
}

func pageText(p pdf.Page) (string, error) {
	if p.V.IsNull() {
		return "", nil
	}
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
