package ingest

import (
	"context"
	"time"

	"github.com/leocbehe/vivian"
)

// FetchFunc is the signature of a single fetch attempt.
type FetchFunc func(ctx context.Context, url string) (*vivian.FetchResult, error)

// BackoffDelays returns 1s, 2s and 4s, for callers that want retries.
// The Ingester does not retry unless RetryDelays is set.
func BackoffDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch once, then once more after each delay while
// the previous attempt failed with a network error. Other errors are
// returned immediately. onRetry, if set, is called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry func(attempt int, err error)) (*vivian.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if vivian.ErrorCode(err) != vivian.ENETWORK || attempt >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
