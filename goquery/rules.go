package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rule reports whether a node should be removed. Rules are pure: they read
// the node and its subtree and never modify the tree.
type Rule func(n *html.Node) bool

// Pass is a named group of rules applied together. A node is removed by the
// pass when any of its rules matches.
type Pass struct {
	Name  string
	Rules []Rule

	// Aggressive passes only run when aggressive cleaning is enabled.
	Aggressive bool
}

// Matches reports whether any rule of the pass matches n.
func (p Pass) Matches(n *html.Node) bool {
	for _, r := range p.Rules {
		if r(n) {
			return true
		}
	}
	return false
}

// TagIn matches elements with any of the given tag names.
func TagIn(tags ...string) Rule {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && set[n.Data]
	}
}

// RoleIn matches elements whose role attribute is one of roles.
func RoleIn(roles ...string) Rule {
	set := make(map[string]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		role, ok := attr(n, "role")
		return ok && set[strings.ToLower(strings.TrimSpace(role))]
	}
}

// ClassOrIDMatches matches elements whose joined class list or id matches
// any of the patterns. The html, head and body elements never match.
func ClassOrIDMatches(patterns ...*regexp.Regexp) Rule {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || isDocumentFrame(n) {
			return false
		}
		if class, ok := attr(n, "class"); ok && class != "" {
			joined := strings.Join(strings.Fields(class), " ")
			for _, p := range patterns {
				if p.MatchString(joined) {
					return true
				}
			}
		}
		if id, ok := attr(n, "id"); ok && id != "" {
			for _, p := range patterns {
				if p.MatchString(id) {
					return true
				}
			}
		}
		return false
	}
}

// AdSize is a width by height pair in pixels.
type AdSize struct {
	Width, Height int
}

// standardAdSizes are the common display ad dimensions.
var standardAdSizes = []AdSize{
	{728, 90}, {300, 250}, {336, 280}, {320, 50}, {468, 60},
	{970, 250}, {300, 600}, {320, 100}, {970, 90}, {160, 600},
}

var firstInt = regexp.MustCompile(`\d+`)

// DimensionsIn matches elements whose width and height attributes, read as
// the first integer in each value, equal one of sizes.
func DimensionsIn(sizes ...AdSize) Rule {
	set := make(map[AdSize]bool, len(sizes))
	for _, s := range sizes {
		set[s] = true
	}
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		w, ok := intAttr(n, "width")
		if !ok {
			return false
		}
		h, ok := intAttr(n, "height")
		if !ok {
			return false
		}
		return set[AdSize{w, h}]
	}
}

// IsComment matches HTML comment nodes.
func IsComment(n *html.Node) bool {
	return n.Type == html.CommentNode
}

// Decorative matches div, span, section and article elements whose trimmed
// text is shorter than three characters, unless they contain a paragraph,
// heading, list item or table cell.
func Decorative(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Div, atom.Span, atom.Section, atom.Article:
	default:
		return false
	}
	if utf8.RuneCountInString(strings.TrimSpace(textOf(n))) >= 3 {
		return false
	}
	return !hasDescendant(n, atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li, atom.Td, atom.Th)
}

// Empty matches elements with no visible text and no img, video or audio
// descendant. Media elements themselves and the html, head and body
// elements never match.
func Empty(n *html.Node) bool {
	if n.Type != html.ElementNode || isDocumentFrame(n) {
		return false
	}
	switch n.DataAtom {
	case atom.Img, atom.Video, atom.Audio:
		return false
	}
	if strings.TrimSpace(textOf(n)) != "" {
		return false
	}
	return !hasDescendant(n, atom.Img, atom.Video, atom.Audio)
}

func isDocumentFrame(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Html, atom.Head, atom.Body:
		return true
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func intAttr(n *html.Node, key string) (int, bool) {
	v, ok := attr(n, key)
	if !ok {
		return 0, false
	}
	digits := firstInt.FindString(v)
	if digits == "" {
		return 0, false
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return i, true
}

// textOf concatenates the text nodes under n in document order.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// hasDescendant reports whether any element below n has one of the atoms.
func hasDescendant(n *html.Node, atoms ...atom.Atom) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			for _, a := range atoms {
				if c.DataAtom == a {
					return true
				}
			}
		}
		if hasDescendant(c, atoms...) {
			return true
		}
	}
	return false
}
