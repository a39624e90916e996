package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/leocbehe/vivian"
	main "github.com/leocbehe/vivian/cmd/vivian"
	"github.com/leocbehe/vivian/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsCmd_Run(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)

	newDeps := func(stdout, stderr *bytes.Buffer) *main.Dependencies {
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Files: &mock.FileService{
				FindFileByIDFn: func(_ context.Context, id string) (*vivian.File, error) {
					if id != "file-1" {
						return nil, vivian.Errorf(vivian.ENOTFOUND, "file not found")
					}
					return &vivian.File{ID: "file-1", Name: "a.html"}, nil
				},
			},
			Segments: &mock.SegmentService{
				FindSegmentsFn: func(_ context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error) {
					require.NotNil(t, filter.FileID)
					assert.Equal(t, "file-1", *filter.FileID)
					return []*vivian.Segment{
						{FileID: "file-1", Ordinal: 0, Text: "short text", Length: 10, Tokens: 2},
						{FileID: "file-1", Ordinal: 1, Text: long, Length: 200, Tokens: 40},
					}, nil
				},
			},
		}
	}

	t.Run("previews segments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := (&main.SegmentsCmd{FileID: "file-1"}).Run(newDeps(stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Segments for a.html (2 total)")
		assert.Contains(t, stdout.String(), "0. [10 chars, 2 tokens] short text")
		assert.Contains(t, stdout.String(), "1. [200 chars, 40 tokens] word")
		assert.Contains(t, stdout.String(), "...")
		assert.NotContains(t, stdout.String(), long)
	})

	t.Run("full text", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := (&main.SegmentsCmd{FileID: "file-1", Full: true}).Run(newDeps(stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), long)
	})

	t.Run("unknown file", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := (&main.SegmentsCmd{FileID: "nope"}).Run(newDeps(&bytes.Buffer{}, stderr))

		require.Error(t, err)
		assert.Equal(t, vivian.ENOTFOUND, vivian.ErrorCode(err))
		assert.Contains(t, stderr.String(), "vivian files")
	})
}
