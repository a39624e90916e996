package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// nonContentSelectors match site chrome that never belongs to an article.
var nonContentSelectors = []string{
	"nav", "header", "footer", "aside", "sidebar",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`, `[role="complementary"]`,
	".sidebar", ".nav", ".navigation", ".header", ".footer", ".aside",
	"#sidebar", "#nav", "#navigation", "#header", "#footer", "#aside",
}

var nonContentPatterns = compilePatterns([]string{
	`breadcrumb`, `pagination`, `pager`, `tags`,
	`author.*info`, `byline`, `meta`, `date`,
	`share`, `social`, `related`, `recommend`,
	`comment`, `reply`, `discussion`,
})

// mainContentSelectors are tried in order after main, article and
// [role=main].
var mainContentSelectors = []string{
	"#main", "#content", "#main-content", "#primary", "#article",
	".main", ".content", ".main-content", ".primary", ".article",
	".post", ".entry", ".story",
}

var titleSelectors = []string{
	".title", ".headline", ".post-title", ".entry-title", ".article-title",
	`[class*="title"]`, `[class*="headline"]`,
}

// RemoveNonContent removes structural chrome and elements whose class or id
// marks them as breadcrumbs, pagination, tags, bylines, sharing widgets,
// related links or comments. The html, head and body elements are kept.
func RemoveNonContent(doc *goquery.Document) {
	for _, sel := range nonContentSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			for _, n := range s.Nodes {
				if !isDocumentFrame(n) {
					detach(n)
				}
			}
		})
	}

	pass := Pass{Name: "non-content", Rules: []Rule{ClassOrIDMatches(nonContentPatterns...)}}
	for _, root := range doc.Nodes {
		Apply(root, pass)
	}
}

// LocateMainContent returns the subtree most likely to hold the primary
// text: main, then article, then [role=main], then common content ids and
// classes, then body. Without any of these the whole document is returned.
func LocateMainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"main", "article", `[role="main"]`} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	for _, sel := range mainContentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if s := doc.Find("body").First(); s.Length() > 0 {
		return s
	}
	return doc.Selection
}

// LocateTitle returns the first h1 under root, falling back to h2, h3, h4
// and then to elements with title or headline classes. The returned
// selection is empty when nothing matches.
func LocateTitle(root *goquery.Selection) *goquery.Selection {
	for _, sel := range []string{"h1", "h2", "h3", "h4"} {
		if s := root.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	for _, sel := range titleSelectors {
		if s := root.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return root.Slice(0, 0)
}

// TruncateBeforeTitle removes every element under root that precedes title
// in document order and is not one of its ancestors. Text nodes are kept.
// It does nothing when title is empty or not inside root.
func TruncateBeforeTitle(root, title *goquery.Selection) {
	if title == nil || title.Length() == 0 || root.Length() == 0 {
		return
	}
	top := root.Get(0)
	n := title.Get(0)
	if !isAncestor(top, n) {
		return
	}
	for ; n != top; n = n.Parent {
		for s := n.PrevSibling; s != nil; {
			prev := s.PrevSibling
			if s.Type == html.ElementNode {
				detach(s)
			}
			s = prev
		}
	}
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
