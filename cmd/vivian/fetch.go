package main

import (
	"fmt"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/bloom"
	"github.com/leocbehe/vivian/goquery"
	"github.com/leocbehe/vivian/ingest"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	urlFilter, err := vivian.NewURLFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}

	urls := c.URLs
	if c.Sitemap {
		urls = nil
		for _, u := range c.URLs {
			found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, u, urlFilter)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
				return err
			}
			if len(found) == 0 {
				fmt.Fprintf(deps.Stderr, "  no sitemap for %s, fetching it directly\n", u)
				found = []string{u}
			}
			fmt.Fprintf(deps.Stdout, "  Found %d URLs for %s\n", len(found), u)
			urls = append(urls, found...)
		}
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, ingest.TruncateURL(event.URL, 70))
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, vivian.ErrorMessage(event.Error))
		}
	}

	batch, err := deps.Ingester.IngestAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Links {
		linked := c.linkedURLs(deps, batch, urlFilter)
		if len(linked) > 0 {
			fmt.Fprintf(deps.Stdout, "  Following %d links\n", len(linked))
			more, err := deps.Ingester.IngestAll(deps.Ctx, linked, progress)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %v\n", err)
				return err
			}
			batch.Results = append(batch.Results, more.Results...)
			batch.Saved += more.Saved
			batch.Failed += more.Failed
			batch.Skipped += more.Skipped
			batch.Bytes += more.Bytes
			batch.Tokens += more.Tokens
		}
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d resources (%s, %s)\n",
		batch.Saved, ingest.FormatBytes(batch.Bytes), ingest.FormatTokens(batch.Tokens))
	if batch.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Unchanged %d\n", batch.Skipped)
	}
	if batch.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d\n", batch.Failed)
		if batch.Saved == 0 && batch.Skipped == 0 {
			return vivian.Errorf(vivian.ENETWORK, "all %d fetches failed", batch.Failed)
		}
	}
	return nil
}

// linkedURLs returns the same-site links found on the fetched HTML pages
// that pass filter and were not part of the batch.
func (c *FetchCmd) linkedURLs(deps *Dependencies, batch *ingest.BatchResult, filter *vivian.URLFilter) []string {
	seen := bloom.NewFilter(uint(len(batch.Results))*32, 0.0001)
	for _, r := range batch.Results {
		seen.Add(r.URL)
	}

	var urls []string
	for _, r := range batch.Results {
		if r.Err != nil || r.Fetch == nil || !r.Fetch.IsHTML {
			continue
		}
		links, err := goquery.ExtractLinks(string(r.Fetch.Body), r.Fetch.FinalURL, filter)
		if err != nil {
			if deps.Logger != nil {
				deps.Logger.Debug("links", "url", r.URL, "err", err)
			}
			continue
		}
		for _, l := range links {
			if !seen.Seen(l.URL) {
				urls = append(urls, l.URL)
			}
		}
	}
	if deps.Logger != nil {
		deps.Logger.Debug("link frontier", "known", seen.EstimatedCount(), "new", len(urls))
	}
	return urls
}
