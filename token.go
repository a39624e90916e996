package vivian

import "context"

// TokenCounter counts tokens in text for a specific encoding.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// CountTokens counts tokens with tc, falling back to ApproximateTokens when
// tc is nil or fails.
func CountTokens(ctx context.Context, tc TokenCounter, text string) int {
	if tc == nil {
		return ApproximateTokens(text)
	}
	n, err := tc.CountTokens(ctx, text)
	if err != nil {
		return ApproximateTokens(text)
	}
	return n
}
