package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/leocbehe/vivian"
)

// Run executes the split command.
func (c *SplitCmd) Run(deps *Dependencies) error {
	name := "stdin"
	var content []byte
	var err error
	if c.Path == "-" {
		content, err = io.ReadAll(deps.Stdin)
	} else {
		name = filepath.Base(c.Path)
		content, err = os.ReadFile(c.Path)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %s: %v\n", c.Path, err)
		return vivian.WrapError(vivian.EIO, err, "cannot read %s", c.Path)
	}

	text := vivian.FileText(name, content, deps.PDF)
	chunks := vivian.SplitIntoChunks(text, deps.Config.MaxChunkChars)
	if !c.KeepEmpty {
		chunks = vivian.NonEmptyChunks(chunks)
	}

	for _, ch := range chunks {
		fmt.Fprintf(deps.Stdout, "--- chunk %d (%d words, %d chars) ---\n%s\n",
			ch.Ordinal, ch.WordCount, utf8.RuneCountInString(ch.Text), ch.Text)
	}
	return nil
}
