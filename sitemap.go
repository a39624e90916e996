package vivian

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// SitemapService discovers the page URLs of a site for batch fetches.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the sitemaps of the site
	// at baseURL, in sitemap order without duplicates. Sitemaps are named
	// by robots.txt, or /sitemap.xml when robots.txt names none, and
	// sitemap indexes are followed. A baseURL with a non-root path keeps
	// only URLs at or below that path. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter selects the URLs a batch fetch visits. Host and PathPrefix
// scope URLs to one site section; Include and Exclude select by pattern.
// A nil *URLFilter matches every URL.
type URLFilter struct {
	// Host, when set, must equal the URL host (case-insensitive).
	Host string

	// PathPrefix, when set, must be the URL path or a parent of it. A
	// prefix ending in "/" matches any path that starts with it.
	PathPrefix string

	// Include patterns: a URL must match at least one when any are set.
	Include []*regexp.Regexp

	// Exclude patterns: a URL matching any of them is rejected.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include patterns into a filter. It returns nil when
// there are no patterns and EINVALID for a pattern that does not compile.
func NewURLFilter(include []string) (*URLFilter, error) {
	if len(include) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, WrapError(EINVALID, err, "invalid filter pattern %q", pattern)
		}
		f.Include = append(f.Include, re)
	}
	return f, nil
}

// Scoped returns a copy of f restricted to host and pathPrefix. Empty
// arguments leave the existing scope in place.
func (f *URLFilter) Scoped(host, pathPrefix string) *URLFilter {
	scoped := &URLFilter{}
	if f != nil {
		*scoped = *f
	}
	if host != "" {
		scoped.Host = host
	}
	if pathPrefix != "" {
		scoped.PathPrefix = pathPrefix
	}
	return scoped
}

// Match reports whether rawURL passes the filter. URLs that cannot be
// parsed fail a scoped filter.
func (f *URLFilter) Match(rawURL string) bool {
	if f == nil {
		return true
	}

	if f.Host != "" || f.PathPrefix != "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return false
		}
		if f.Host != "" && !strings.EqualFold(u.Host, f.Host) {
			return false
		}
		if f.PathPrefix != "" && !underPath(u.Path, f.PathPrefix) {
			return false
		}
	}

	if len(f.Include) > 0 && !matchesAny(f.Include, rawURL) {
		return false
	}
	return !matchesAny(f.Exclude, rawURL)
}

func underPath(path, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
