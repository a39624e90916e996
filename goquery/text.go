package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/leocbehe/vivian"
)

// ExtractText returns the text under sel with layout whitespace collapsed.
// Text nodes are concatenated in document order before normalization.
func ExtractText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return vivian.NormalizeWhitespace(sel.Text())
}
