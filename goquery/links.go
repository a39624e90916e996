package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leocbehe/vivian"
)

// ExtractLinks returns the same-host links of a page that pass filter, in
// document order and without duplicates. Fragments are dropped, links back
// to the page itself and non-HTTP schemes are skipped. When the base URL has
// a path, only links below its directory are kept.
func ExtractLinks(rawHTML, baseURL string, filter *vivian.URLFilter) ([]vivian.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, vivian.Errorf(vivian.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	dir := base.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	}
	scope := filter.Scoped(base.Host, dir)

	seen := make(map[string]bool)
	var links []vivian.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		u, ok := resolveLink(base, href)
		if !ok {
			return
		}
		s := u.String()
		if !scope.Match(s) {
			return
		}
		if seen[s] {
			return
		}
		seen[s] = true
		links = append(links, vivian.Link{
			URL:  s,
			Text: vivian.NormalizeWhitespace(sel.Text()),
		})
	})
	return links, nil
}

// resolveLink resolves href against base without its fragment. It reports
// false for unparseable links and links back to base itself.
func resolveLink(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}

	self := *base
	self.Fragment = ""
	if u.String() == self.String() {
		return nil, false
	}
	return u, true
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
