package mock

import "github.com/leocbehe/vivian"

var _ vivian.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of vivian.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(r *vivian.FetchResult) (string, error)
}

func (w *ResultWriter) WriteResult(r *vivian.FetchResult) (string, error) {
	return w.WriteResultFn(r)
}
