package main

import (
	"fmt"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/ingest"
)

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	files, err := deps.Cache.List()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "Cache is empty. Use 'vivian fetch' to add files.")
		return nil
	}

	for _, f := range files {
		fmt.Fprintf(deps.Stdout, "%-40s  %s\n", f.Name, ingest.FormatBytes(f.Size))
	}
	return nil
}

// Run executes the cache ingest command.
func (c *CacheIngestCmd) Run(deps *Dependencies) error {
	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d cached files\n", event.Total)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, vivian.ErrorMessage(event.Error))
		}
	}

	batch, err := deps.Ingester.IngestCache(deps.Ctx, deps.Cache, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Stored %d files (%s, %s)\n",
		batch.Saved, ingest.FormatBytes(batch.Bytes), ingest.FormatTokens(batch.Tokens))
	if batch.Failed > 0 {
		fmt.Fprintf(deps.Stderr, "  %d files failed; cache kept\n", batch.Failed)
		return vivian.Errorf(vivian.EIO, "%d cached files could not be stored", batch.Failed)
	}
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return vivian.Errorf(vivian.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Cache.Clear(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cache cleared")
	return nil
}
