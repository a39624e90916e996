package mock

import (
	"context"

	"github.com/leocbehe/vivian"
)

var _ vivian.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of vivian.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*vivian.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*vivian.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
