package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/mock"
	vslog "github.com/leocbehe/vivian/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSegmentService(t *testing.T) {
	t.Parallel()

	t.Run("logs created batch", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var got []*vivian.Segment
		inner := &mock.SegmentService{
			CreateSegmentsFn: func(ctx context.Context, segments []*vivian.Segment) error {
				got = segments
				return nil
			},
		}

		svc := vslog.NewLoggingSegmentService(inner, logger)
		err := svc.CreateSegments(context.Background(), []*vivian.Segment{
			{FileID: "f1", Text: "a", Tokens: 3},
			{FileID: "f1", Text: "b", Tokens: 4},
		})

		require.NoError(t, err)
		assert.Len(t, got, 2)
		output := buf.String()
		assert.Contains(t, output, "create segments")
		assert.Contains(t, output, "file=f1")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "tokens=7")
	})

	t.Run("logs delete error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SegmentService{
			DeleteSegmentsByFileFn: func(ctx context.Context, fileID string) error {
				return errors.New("locked")
			},
		}

		err := vslog.NewLoggingSegmentService(inner, logger).DeleteSegmentsByFile(context.Background(), "f1")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "delete segments")
		assert.Contains(t, output, "err=locked")
	})

	t.Run("find delegates without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SegmentService{
			FindSegmentsFn: func(ctx context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error) {
				return []*vivian.Segment{{Text: "x"}}, nil
			},
		}

		found, err := vslog.NewLoggingSegmentService(inner, logger).FindSegments(context.Background(), vivian.SegmentFilter{})

		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Empty(t, buf.String())
	})
}
