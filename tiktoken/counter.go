// Package tiktoken counts tokens with OpenAI BPE encodings.
package tiktoken

import (
	"context"

	"github.com/leocbehe/vivian"
	"github.com/pkoukk/tiktoken-go"
)

// Ensure TokenCounter implements vivian.TokenCounter at compile time.
var _ vivian.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with a single BPE encoding. It is safe for
// concurrent use.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the named encoding, such as "r50k_base" or
// "cl100k_base". Encodings that are not cached locally are downloaded on
// first use.
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	if encoding == "" {
		encoding = vivian.DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, vivian.WrapError(vivian.EINVALID, err, "cannot load encoding %q", encoding)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}
	return len(c.enc.Encode(text, nil, nil)), nil
}
