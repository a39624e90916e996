package vivian

import (
	"strings"
	"unicode/utf8"
)

// NormalizeWhitespace collapses the layout whitespace of extracted text.
// Each line is trimmed and split on tabs and on runs of two or more spaces;
// the non-empty phrases are joined with single spaces. Single spaces inside
// a phrase are kept as they are.
func NormalizeWhitespace(s string) string {
	var phrases []string
	for _, line := range strings.FieldsFunc(s, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, "\t", "  ")
		for _, phrase := range strings.Split(line, "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
	}
	return strings.Join(phrases, " ")
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// typographyReplacer maps typographic punctuation to its ASCII counterpart.
var typographyReplacer = strings.NewReplacer(
	// single quotes
	"’", "'", "‘", "'", "‚", "'", "‛", "'",
	"′", "'", "´", "'", "`", "'",

	// double quotes
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"″", `"`, "«", `"`, "»", `"`,

	// dashes
	"—", "-", "–", "-", "―", "-", "−", "-",
	"\u00ad", "-", "‐", "-", "‑", "-",

	// slashes
	"⁄", "/", "∕", "/", "⧸", "/",
	"∖", `\`, "⧹", `\`, "⟍", `\`,

	// brackets
	"〈", "<", "〉", ">", "⟨", "<", "⟩", ">",
	"〈", "<", "〉", ">",
	"❲", "[", "❳", "]", "⟦", "[", "⟧", "]",
	"［", "[", "］", "]",
	"❴", "{", "❵", "}", "｛", "{", "｝", "}",
	"（", "(", "）", ")", "❨", "(", "❩", ")",
	"❪", "(", "❫", ")",

	"•", "*",
	"\u0301", "`",
	"\x00", "␀",
)

// ReplaceTypography rewrites typographic quotes, dashes, slashes, brackets
// and bullets to plain ASCII. NUL bytes become the visible U+2400 symbol.
func ReplaceTypography(s string) string {
	return typographyReplacer.Replace(s)
}

// ApproximateTokens estimates a token count at four runes per token. It never
// returns less than one.
func ApproximateTokens(s string) int {
	return max(1, utf8.RuneCountInString(s)/4)
}
