package vivian_test

import (
	"context"
	"errors"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/mock"
	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("uses counter", func(t *testing.T) {
		t.Parallel()

		tc := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return 42, nil
			},
		}

		assert.Equal(t, 42, vivian.CountTokens(ctx, tc, "some text"))
	})

	t.Run("falls back on error", func(t *testing.T) {
		t.Parallel()

		tc := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("encoding unavailable")
			},
		}

		assert.Equal(t, 3, vivian.CountTokens(ctx, tc, "twelve chars"))
	})

	t.Run("falls back without counter", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1, vivian.CountTokens(ctx, nil, "hi"))
	})
}
