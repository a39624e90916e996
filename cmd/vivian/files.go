package main

import (
	"fmt"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/ingest"
)

// Run executes the files command.
func (c *FilesCmd) Run(deps *Dependencies) error {
	filter := vivian.FileFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	files, err := deps.Files.FindFiles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No files stored. Use 'vivian fetch --store' or 'vivian cache ingest' to add some.")
		return nil
	}

	for _, f := range files {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			f.ID, f.CreatedAt.UTC().Format("2006/01/02 15:04"), f.Name, ingest.FormatBytes(f.Size), f.SourceURL)
	}
	return nil
}
