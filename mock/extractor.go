package mock

import "github.com/leocbehe/vivian"

var _ vivian.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of vivian.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*vivian.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*vivian.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ vivian.MetadataReader = (*MetadataReader)(nil)

// MetadataReader is a mock implementation of vivian.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(html, pageURL string) (*vivian.PageMetadata, error)
}

func (r *MetadataReader) ReadMetadata(html, pageURL string) (*vivian.PageMetadata, error) {
	return r.ReadMetadataFn(html, pageURL)
}
