package vivian

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkChars is the chunk size used when no positive size is given.
const DefaultMaxChunkChars = 8192

// Chunk is one word-aligned segment of a larger text.
type Chunk struct {
	// Text holds whole words joined by single spaces.
	Text string `json:"text"`

	// Ordinal is the zero-based position of the chunk in its sequence.
	Ordinal int `json:"ordinal"`

	// WordCount is the number of words in Text.
	WordCount int `json:"wordCount"`
}

// SplitIntoChunks splits text into word-aligned chunks of roughly equal word
// count. The number of chunks is ceil(runes/maxChunkChars); words are spread
// so that the first total%n chunks carry one extra word. A non-positive
// maxChunkChars selects DefaultMaxChunkChars.
//
// Empty text yields nil. Text that fits in one chunk yields a single chunk
// holding all of its words. Whitespace-only text long enough to need several
// chunks yields that many empty chunks; see NonEmptyChunks.
func SplitIntoChunks(text string, maxChunkChars int) []Chunk {
	if text == "" {
		return nil
	}
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}

	words := strings.Fields(text)

	length := utf8.RuneCountInString(text)
	n := (length + maxChunkChars - 1) / maxChunkChars
	if n <= 1 {
		return []Chunk{{
			Text:      strings.Join(words, " "),
			Ordinal:   0,
			WordCount: len(words),
		}}
	}

	base := len(words) / n
	rem := len(words) % n

	chunks := make([]Chunk, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		end := start + size
		chunks = append(chunks, Chunk{
			Text:      strings.Join(words[start:end], " "),
			Ordinal:   i,
			WordCount: size,
		})
		start = end
	}
	return chunks
}

// NonEmptyChunks returns the chunks that carry text, keeping their order and
// original ordinals.
func NonEmptyChunks(chunks []Chunk) []Chunk {
	var out []Chunk
	for _, c := range chunks {
		if c.Text != "" {
			out = append(out, c)
		}
	}
	return out
}

// JoinChunks re-joins chunk texts with single spaces, skipping empty chunks.
// For text whose words were separated by single spaces, joining the result
// of SplitIntoChunks reproduces the input.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}
