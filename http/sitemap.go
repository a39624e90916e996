package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/gzip"
	"github.com/leocbehe/vivian"
)

// Ensure SitemapService implements vivian.SitemapService.
var _ vivian.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs for batch fetches from a site's
// sitemaps.
type SitemapService struct {
	client  *http.Client
	headers http.Header
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	headers := DefaultHeaders()
	// Sitemap bodies are read through the transport's own decompression.
	headers.Del("Accept-Encoding")
	return &SitemapService{client: client, headers: headers}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps, in
// sitemap order without duplicates. Sitemaps come from the robots.txt
// Sitemap directives, or /sitemap.xml when robots.txt names none. Returns an
// empty slice when the site has no sitemap.
//
// A baseURL with a non-root path restricts results to that path prefix.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *vivian.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, vivian.Errorf(vivian.EINVALID, "invalid base URL %q", baseURL)
	}
	scope := filter.Scoped("", strings.TrimSuffix(base.Path, "/"))
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, visited: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.visit(ctx, sm); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(w.urls))
	seen := make(map[string]bool, len(w.urls))
	for _, u := range w.urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		if !scope.Match(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// locateSitemaps reads Sitemap directives from robots.txt and falls back to
// /sitemap.xml when there are none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		defer body.Close()
		if found := sitemapDirectives(body); len(found) > 0 {
			return found, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func sitemapDirectives(r io.Reader) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// sitemapWalk follows sitemap indexes depth first and collects page URLs.
type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	urls    []string
}

func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		zr, err := gzip.NewReader(body)
		if err != nil {
			return vivian.WrapError(vivian.ENETWORK, err, "cannot decompress sitemap %s", sitemapURL)
		}
		defer zr.Close()
		r = zr
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return vivian.WrapError(vivian.EINVALID, err, "cannot parse sitemap %s", sitemapURL)
	}
	root := doc.Root()
	if root == nil {
		return vivian.Errorf(vivian.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	w.urls = append(w.urls, locs(root, "url")...)
	return nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) request(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, vivian.WrapError(vivian.EINVALID, err, "invalid request for %s", target)
	}
	for k, v := range s.headers {
		req.Header[k] = v
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, vivian.WrapError(vivian.ENETWORK, err, "cannot fetch %s", target)
	}
	return resp, nil
}

// get returns the body of a 200 response.
func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	resp, err := s.request(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, vivian.Errorf(vivian.ENETWORK, "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	resp, err := s.request(ctx, http.MethodHead, target)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
