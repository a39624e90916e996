package main

import (
	"fmt"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/htmltomarkdown"
)

// Run executes the text command.
func (c *TextCmd) Run(deps *Dependencies) error {
	result, err := deps.Ingester.Ingest(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	text := result.Text
	if deps.Config.Format == vivian.FormatMarkdown && result.Fetch.IsHTML {
		if text, err = htmltomarkdown.WithFrontmatter(text, c.URL, result.Title); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
			return err
		}
	}

	if text == "" {
		fmt.Fprintf(deps.Stderr, "no text found at %s\n", c.URL)
		return nil
	}
	fmt.Fprintln(deps.Stdout, text)
	return nil
}
