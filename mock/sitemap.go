package mock

import (
	"context"

	"github.com/leocbehe/vivian"
)

var _ vivian.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of vivian.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *vivian.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *vivian.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
