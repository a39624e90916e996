// Package ingest orchestrates the fetch, extract, persist and split
// pipeline for single URLs, URL batches and the output-directory cache.
package ingest

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/bloom"
	"golang.org/x/sync/errgroup"
)

// Batch configuration.
const (
	// DefaultConcurrency bounds the pipelines run at once when Concurrency
	// is not set.
	DefaultConcurrency = vivian.DefaultConcurrency
)

// Ingester runs the pipeline. Fetcher and Extractor are required; every
// other collaborator is optional and its stage is skipped when nil.
type Ingester struct {
	Fetcher   vivian.Fetcher
	Extractor vivian.Extractor
	// Metadata supplies the fallback title and the file summary.
	Metadata vivian.MetadataReader
	// Converter renders the content HTML when Format is FormatMarkdown.
	Converter vivian.Converter
	// Writer persists each fetched resource to the output directory.
	Writer vivian.ResultWriter
	// Files and Segments store each resource and its chunks.
	Files        vivian.FileService
	Segments     vivian.SegmentService
	TokenCounter vivian.TokenCounter
	PDF          vivian.PDFTextExtractor
	// Limiter spaces out requests to the same host.
	Limiter     vivian.HostLimiter
	Concurrency int
	// RetryDelays are the waits between fetch attempts after a network
	// error. Nil means a single attempt.
	RetryDelays   []time.Duration
	Format        string
	MaxChunkChars int
	// Aggressive writes the cleaned content HTML instead of the raw page.
	Aggressive bool
	Logger     *slog.Logger
}

// Result is the outcome of ingesting one URL or cached file.
type Result struct {
	URL   string
	Fetch *vivian.FetchResult
	Title string
	// Text is the extracted text, or Markdown when Format is
	// FormatMarkdown. Non-HTML resources carry their FileText.
	Text string
	// Path is where the resource was written, if a Writer is set.
	Path string
	// File is the stored file, if Files is set.
	File     *vivian.File
	Segments []*vivian.Segment
	Tokens   int
	// Skipped reports that an identical file from the same source was
	// already stored.
	Skipped bool
	Err     error
}

// BatchResult summarizes a batch.
type BatchResult struct {
	Results    []*Result
	Saved      int
	Failed     int
	Skipped    int
	Duplicates int
	Bytes      int64
	Tokens     int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Ingest runs the pipeline for a single URL. Errors from any stage are
// returned and also recorded in the result.
func (in *Ingester) Ingest(ctx context.Context, rawURL string) (*Result, error) {
	result := &Result{URL: rawURL}
	if err := in.ingest(ctx, result); err != nil {
		result.Err = err
		return result, err
	}
	return result, nil
}

func (in *Ingester) ingest(ctx context.Context, result *Result) error {
	u, err := url.Parse(result.URL)
	if err != nil || u.Host == "" {
		return vivian.Errorf(vivian.EINVALID, "invalid URL %q", result.URL)
	}

	if in.Limiter != nil {
		if err := in.Limiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	fetched, err := FetchWithRetry(ctx, result.URL, in.Fetcher.Fetch, in.RetryDelays, func(attempt int, err error) {
		in.logger().Debug("retry", "url", result.URL, "attempt", attempt, "err", err)
	})
	if err != nil {
		return err
	}
	result.Fetch = fetched

	body := fetched.Body
	var summary string
	if fetched.IsHTML {
		extracted, err := in.Extractor.Extract(string(fetched.Body))
		if err != nil {
			return err
		}
		result.Title = extracted.Title

		if in.Metadata != nil {
			meta, err := in.Metadata.ReadMetadata(string(fetched.Body), fetched.FinalURL)
			if err != nil {
				in.logger().Debug("metadata", "url", result.URL, "err", err)
			} else {
				if result.Title == "" {
					result.Title = meta.Title
				}
				summary = meta.Excerpt
			}
		}

		result.Text, err = in.render(extracted, fetched.FinalURL)
		if err != nil {
			return err
		}

		if in.Aggressive && extracted.ContentHTML != "" {
			body = []byte(extracted.ContentHTML)
		}
	}

	if in.Writer != nil {
		persisted := *fetched
		persisted.Body = body
		if result.Path, err = in.Writer.WriteResult(&persisted); err != nil {
			return err
		}
	}

	name := resourceName(fetched, result.Path)
	if !fetched.IsHTML {
		result.Text = vivian.FileText(name, fetched.Body, in.PDF)
	}

	if in.Files == nil {
		result.Tokens = vivian.CountTokens(ctx, in.TokenCounter, result.Text)
		return nil
	}

	return in.store(ctx, result, &vivian.File{
		Name:      name,
		SourceURL: result.URL,
		Category:  fetched.Category,
		Content:   body,
		Summary:   summary,
	})
}

// render returns the text form of an extracted page in the configured
// format.
func (in *Ingester) render(extracted *vivian.ExtractResult, pageURL string) (string, error) {
	if in.Format != vivian.FormatMarkdown {
		return extracted.Text, nil
	}
	if in.Converter == nil {
		return "", vivian.Errorf(vivian.EINVALID, "markdown format requires a converter")
	}
	if strings.TrimSpace(extracted.ContentHTML) == "" {
		return "", nil
	}
	return in.Converter.Convert(extracted.ContentHTML, pageURL)
}

// store saves the file unless an identical one from the same source exists,
// then stores the non-empty chunks of result.Text as its segments. The file
// is removed again when its segments cannot be stored.
func (in *Ingester) store(ctx context.Context, result *Result, file *vivian.File) error {
	if len(file.Content) == 0 {
		return vivian.Errorf(vivian.EINVALID, "%s: empty content", file.Name)
	}

	if file.SourceURL != "" {
		hash := ComputeHash(file.Content)
		existing, err := in.Files.FindFiles(ctx, vivian.FileFilter{
			SourceURL:   &file.SourceURL,
			ContentHash: &hash,
			Limit:       1,
		})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result.File = existing[0]
			result.Skipped = true
			return nil
		}
	}

	if err := in.Files.CreateFile(ctx, file); err != nil {
		return err
	}
	result.File = file

	chunks := vivian.NonEmptyChunks(vivian.SplitIntoChunks(result.Text, in.maxChunkChars()))
	segments := make([]*vivian.Segment, 0, len(chunks))
	for _, c := range chunks {
		tokens := vivian.CountTokens(ctx, in.TokenCounter, c.Text)
		segments = append(segments, &vivian.Segment{
			FileID:  file.ID,
			Ordinal: c.Ordinal,
			Text:    c.Text,
			Tokens:  tokens,
		})
		result.Tokens += tokens
	}

	if in.Segments != nil && len(segments) > 0 {
		if err := in.Segments.CreateSegments(ctx, segments); err != nil {
			// A file without its segments would be skipped as unchanged
			// on the next run.
			if delErr := in.Files.DeleteFile(ctx, file.ID); delErr != nil {
				in.logger().Warn("remove file after segment failure", "file", file.ID, "err", delErr)
			}
			result.File = nil
			result.Tokens = 0
			return err
		}
	}
	result.Segments = segments
	return nil
}

// IngestAll runs the pipeline for each distinct URL with bounded
// concurrency. Per-URL failures are reported through progress and counted
// in the result; they never stop the batch. Results keep the order of the
// distinct URLs.
func (in *Ingester) IngestAll(ctx context.Context, urls []string, progress ProgressFunc) (*BatchResult, error) {
	batch := &BatchResult{}

	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		key := bloom.Normalize(u)
		if _, dup := seen[key]; dup {
			batch.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, u)
	}

	concurrency := in.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type indexed struct {
		position int
		result   *Result
	}
	resultCh := make(chan indexed, len(unique))

	var completed atomic.Int64
	total := len(unique)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			g.Go(func() error {
				result, _ := in.Ingest(gctx, u)
				resultCh <- indexed{position: i, result: result}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	batch.Results = make([]*Result, total)
	for r := range resultCh {
		n := int(completed.Add(1))
		batch.Results[r.position] = r.result
		batch.add(r.result)

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: n,
			Total:     total,
			URL:       r.result.URL,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return batch, ctx.Err()
}

// IngestCache stores every file in the cache with its segments, then
// clears the cache. The cache is kept when any file fails so that the
// batch can be retried.
func (in *Ingester) IngestCache(ctx context.Context, cache vivian.Cache, progress ProgressFunc) (*BatchResult, error) {
	if in.Files == nil {
		return nil, vivian.Errorf(vivian.EINVALID, "cache ingest requires a file store")
	}

	cached, err := cache.List()
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{Results: make([]*Result, 0, len(cached))}
	total := len(cached)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	for i, cf := range cached {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		result := &Result{URL: cf.Name}
		if err := in.ingestCached(ctx, cache, cf, result); err != nil {
			result.Err = err
		}
		batch.Results = append(batch.Results, result)
		batch.add(result)

		if progress != nil {
			event := ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: cf.Name}
			if result.Err != nil {
				event.Type = ProgressFailed
				event.Error = result.Err
			}
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if batch.Failed > 0 {
		return batch, nil
	}
	return batch, cache.Clear()
}

func (in *Ingester) ingestCached(ctx context.Context, cache vivian.Cache, cf vivian.CachedFile, result *Result) error {
	content, err := cache.Read(cf.Name)
	if err != nil {
		return err
	}

	category, _ := vivian.Classify("", cf.Name)
	result.Text = vivian.FileText(cf.Name, content, in.PDF)
	if category == vivian.CategoryHTML {
		extracted, err := in.Extractor.Extract(string(content))
		if err != nil {
			return err
		}
		result.Title = extracted.Title
		result.Text = extracted.Text
	}

	return in.store(ctx, result, &vivian.File{
		Name:     cf.Name,
		Category: category,
		Content:  content,
	})
}

func (b *BatchResult) add(r *Result) {
	switch {
	case r.Err != nil:
		b.Failed++
		return
	case r.Skipped:
		b.Skipped++
		return
	}
	b.Saved++
	b.Tokens += r.Tokens
	switch {
	case r.Fetch != nil:
		b.Bytes += int64(len(r.Fetch.Body))
	case r.File != nil:
		b.Bytes += int64(len(r.File.Content))
	}
}

func (in *Ingester) maxChunkChars() int {
	if in.MaxChunkChars <= 0 {
		return vivian.DefaultMaxChunkChars
	}
	return in.MaxChunkChars
}

func (in *Ingester) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return in.Logger
}

// resourceName names a fetched resource after the file it was written to,
// or after the last element of its URL path.
func resourceName(r *vivian.FetchResult, written string) string {
	if written != "" {
		return filepath.Base(written)
	}

	name := "webpage"
	if u, err := url.Parse(r.FinalURL); err == nil {
		if base := path.Base(u.Path); base != "/" && base != "." {
			name = base
		}
	}
	if r.Extension != "" && !strings.HasSuffix(strings.ToLower(name), "."+r.Extension) {
		name += "." + r.Extension
	}
	return name
}
