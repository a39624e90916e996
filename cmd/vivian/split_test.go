package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leocbehe/vivian"
	main "github.com/leocbehe/vivian/cmd/vivian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCmd_Run(t *testing.T) {
	t.Parallel()

	newDeps := func(stdin string, maxChars int) (*main.Dependencies, *bytes.Buffer) {
		cfg := vivian.DefaultConfig()
		cfg.MaxChunkChars = maxChars
		stdout := &bytes.Buffer{}
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: cfg,
		}, stdout
	}

	t.Run("splits a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("alpha beta gamma"), 0644))
		deps, stdout := newDeps("", 100)

		err := (&main.SplitCmd{Path: path}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "--- chunk 0 (3 words, 16 chars) ---\nalpha beta gamma\n", stdout.String())
	})

	t.Run("drops empty chunks unless asked", func(t *testing.T) {
		t.Parallel()

		blank := strings.Repeat(" ", 25)

		deps, stdout := newDeps(blank, 10)
		require.NoError(t, (&main.SplitCmd{Path: "-"}).Run(deps))
		assert.Empty(t, stdout.String())

		deps, stdout = newDeps(blank, 10)
		require.NoError(t, (&main.SplitCmd{Path: "-", KeepEmpty: true}).Run(deps))
		assert.Equal(t, 3, strings.Count(stdout.String(), "--- chunk"))
	})

	t.Run("replaces typography", func(t *testing.T) {
		t.Parallel()

		deps, stdout := newDeps("“quoted” — text", 100)

		require.NoError(t, (&main.SplitCmd{Path: "-"}).Run(deps))
		assert.Contains(t, stdout.String(), `"quoted" - text`)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		deps, _ := newDeps("", 100)

		err := (&main.SplitCmd{Path: filepath.Join(t.TempDir(), "missing.txt")}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, vivian.EIO, vivian.ErrorCode(err))
	})
}
