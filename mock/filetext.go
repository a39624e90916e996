package mock

import "github.com/leocbehe/vivian"

var _ vivian.PDFTextExtractor = (*PDFTextExtractor)(nil)

// PDFTextExtractor is a mock implementation of vivian.PDFTextExtractor.
type PDFTextExtractor struct {
	ExtractPagesFn func(content []byte) ([]string, error)
}

func (e *PDFTextExtractor) ExtractPages(content []byte) ([]string, error) {
	return e.ExtractPagesFn(content)
}
