package main

import (
	"fmt"
	"strings"

	"github.com/leocbehe/vivian"
)

// previewChars bounds the segment text shown without --full.
const previewChars = 80

// Run executes the segments command.
func (c *SegmentsCmd) Run(deps *Dependencies) error {
	file, err := deps.Files.FindFileByID(deps.Ctx, c.FileID)
	if vivian.ErrorCode(err) == vivian.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: file %q not found. Use 'vivian files' to see stored files.\n", c.FileID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	segments, err := deps.Segments.FindSegments(deps.Ctx, vivian.SegmentFilter{FileID: &file.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Segments for %s (%d total):\n\n", file.Name, len(segments))
	for _, s := range segments {
		text := s.Text
		if !c.Full {
			text = preview(text)
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%d chars, %d tokens] %s\n", s.Ordinal, s.Length, s.Tokens, text)
	}
	return nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewChars {
		return s
	}
	return strings.TrimSpace(string(r[:previewChars-3])) + "..."
}
