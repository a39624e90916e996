package mock

import "github.com/leocbehe/vivian"

var _ vivian.Converter = (*Converter)(nil)

// Converter is a mock implementation of vivian.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}
