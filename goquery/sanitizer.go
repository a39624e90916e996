package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Pattern groups matched against class and id attributes during aggressive
// cleaning. Matching is case-insensitive and unanchored.
var (
	advertisingPatterns = []string{`ads?[-_]`, `advertisement`, `banner`, `sponsor`, `promo`, `commercial`, `marketing`}
	socialPatterns      = []string{`social`, `share`, `facebook`, `twitter`, `linkedin`, `instagram`, `youtube`, `pinterest`}
	chromePatterns      = []string{`nav`, `menu`, `sidebar`, `header`, `footer`, `breadcrumb`, `pagination`, `pager`}
	commentPatterns     = []string{`comment`, `reply`, `discussion`, `feedback`}
	widgetPatterns      = []string{`widget`, `plugin`, `popup`, `modal`, `overlay`, `newsletter`, `subscribe`, `signup`, `login`}
	relatedPatterns     = []string{`related`, `recommend`, `suggest`, `similar`, `more.*stories`, `trending`, `popular`}
	trackingPatterns    = []string{`meta`, `track`, `analytics`, `pixel`}
	consentPatterns     = []string{`cookie`, `privacy`, `gdpr`, `consent`}
)

// Sanitizer removes scripts, site chrome, forms, ads and empty markup from
// a parsed document in a fixed sequence of passes.
type Sanitizer struct {
	passes []Pass
}

// NewSanitizer returns a Sanitizer with the default passes.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{passes: DefaultPasses()}
}

// Passes returns the passes in the order they run.
func (s *Sanitizer) Passes() []Pass {
	return s.passes
}

// Sanitize runs every pass over doc in order and returns doc. Aggressive
// passes are skipped unless aggressive is true.
func (s *Sanitizer) Sanitize(doc *goquery.Document, aggressive bool) *goquery.Document {
	for _, root := range doc.Nodes {
		for _, p := range s.passes {
			if p.Aggressive && !aggressive {
				continue
			}
			Apply(root, p)
		}
	}
	return doc
}

// Apply removes every node below root matched by the pass and returns the
// number of subtrees removed. Matches are collected over the unmodified tree
// first and detached afterwards; descendants of a matched node are not
// visited. The root itself is never removed.
func Apply(root *html.Node, p Pass) int {
	var matched []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if p.Matches(c) {
				matched = append(matched, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)

	for _, n := range matched {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return len(matched)
}

// DefaultPasses returns the cleaning passes in execution order.
func DefaultPasses() []Pass {
	return []Pass{
		{
			Name:  "scripts",
			Rules: []Rule{TagIn("script", "style", "noscript")},
		},
		{
			Name: "structure",
			Rules: []Rule{
				TagIn("nav", "header", "footer", "aside", "menu", "menuitem", "toolbar"),
				RoleIn("navigation", "banner", "complementary", "contentinfo", "search"),
			},
		},
		{
			Name:       "patterns",
			Aggressive: true,
			Rules: []Rule{ClassOrIDMatches(compilePatterns(
				advertisingPatterns, socialPatterns, chromePatterns, commentPatterns,
				widgetPatterns, relatedPatterns, trackingPatterns, consentPatterns,
			)...)},
		},
		{
			Name: "roles",
			Rules: []Rule{RoleIn(
				"banner", "navigation", "complementary", "contentinfo", "search",
				"form", "dialog", "alertdialog", "menu", "menubar",
			)},
		},
		{
			Name: "forms",
			Rules: []Rule{
				TagIn("form", "input", "button", "select", "textarea", "fieldset"),
				TagIn("iframe", "embed", "object", "applet"),
			},
		},
		{
			Name:       "ad-sizes",
			Aggressive: true,
			Rules:      []Rule{DimensionsIn(standardAdSizes...)},
		},
		{
			Name:  "comments",
			Rules: []Rule{IsComment},
		},
		{
			Name:  "decorative",
			Rules: []Rule{Decorative},
		},
		{
			Name:  "empty",
			Rules: []Rule{Empty},
		},
	}
}

// compilePatterns compiles pattern groups into case-insensitive regexps.
func compilePatterns(groups ...[]string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, g := range groups {
		for _, p := range g {
			out = append(out, regexp.MustCompile(`(?i)`+p))
		}
	}
	return out
}
