package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   vivian.Config
	Sitemaps vivian.SitemapService
	Files    vivian.FileService
	Segments vivian.SegmentService
	Cache    vivian.Cache
	PDF      vivian.PDFTextExtractor
	Ingester *ingest.Ingester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"YAML configuration file" env:"VIVIAN_CONFIG" type:"path"`
	DB      string `name:"db" help:"SQLite database path" env:"VIVIAN_DB"`
	Verbose bool   `short:"v" help:"Log every pipeline stage"`

	Fetch    FetchCmd    `cmd:"" help:"Fetch URLs into the output directory"`
	Text     TextCmd     `cmd:"" help:"Print the main text of a web page"`
	Split    SplitCmd    `cmd:"" help:"Split a text file into word-aligned chunks"`
	Cache    CacheCmd    `cmd:"" help:"Manage fetched files waiting in the output directory"`
	Files    FilesCmd    `cmd:"" help:"List stored files"`
	Segments SegmentsCmd `cmd:"" help:"Print the segments of a stored file"`
	Show     ConfigCmd   `cmd:"" name:"config" help:"Print the effective configuration as YAML"`
}

// PipelineFlags override configuration values for commands that run the
// pipeline. Zero values leave the configuration unchanged.
type PipelineFlags struct {
	Aggressive bool          `short:"a" help:"Also remove elements whose class or id looks like ads, widgets or comments"`
	Timeout    time.Duration `help:"Budget for each HTTP request"`
	Format     string        `short:"f" help:"Output format for HTML content (text or markdown)"`
}

// Apply copies the set flags into cfg.
func (f *PipelineFlags) Apply(cfg *vivian.Config) {
	if f.Aggressive {
		cfg.AggressiveCleaning = true
	}
	if f.Timeout > 0 {
		cfg.RequestTimeoutSeconds = int((f.Timeout + time.Second - 1) / time.Second)
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	PipelineFlags

	URLs        []string `arg:"" name:"url" help:"URLs to fetch"`
	Sitemap     bool     `short:"s" help:"Fetch the pages listed in each site's sitemap"`
	Links       bool     `short:"l" help:"Also fetch same-site links found below each page"`
	Filter      []string `short:"F" name:"filter" help:"Only keep sitemap URLs matching this regex (repeatable)"`
	Out         string   `short:"o" help:"Output directory"`
	Concurrency int      `short:"c" help:"Concurrent fetch limit"`
	Store       bool     `help:"Store each resource and its chunks in the database"`
	MaxChars    int      `help:"Maximum characters per stored chunk"`
}

// Apply copies the set flags into cfg.
func (c *FetchCmd) Apply(cfg *vivian.Config) {
	c.PipelineFlags.Apply(cfg)
	if c.Out != "" {
		cfg.OutputDirectory = c.Out
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.MaxChars > 0 {
		cfg.MaxChunkChars = c.MaxChars
	}
}

// TextCmd is the "text" subcommand.
type TextCmd struct {
	PipelineFlags

	URL string `arg:"" help:"Page URL"`
}

// SplitCmd is the "split" subcommand.
type SplitCmd struct {
	Path      string `arg:"" optional:"" default:"-" help:"File to split, or - for standard input"`
	MaxChars  int    `help:"Maximum characters per chunk"`
	KeepEmpty bool   `help:"Print chunks that carry no words"`
}

// Apply copies the set flags into cfg.
func (c *SplitCmd) Apply(cfg *vivian.Config) {
	if c.MaxChars > 0 {
		cfg.MaxChunkChars = c.MaxChars
	}
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	List   CacheListCmd   `cmd:"" help:"List cached files"`
	Ingest CacheIngestCmd `cmd:"" help:"Store cached files and their chunks, then clear the cache"`
	Clear  CacheClearCmd  `cmd:"" help:"Delete all cached files"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct{}

// CacheIngestCmd is the "cache ingest" subcommand.
type CacheIngestCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// FilesCmd is the "files" subcommand.
type FilesCmd struct {
	Source string `help:"Only list files fetched from this URL"`
	Limit  int    `short:"n" help:"Maximum number of files to list"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}

// SegmentsCmd is the "segments" subcommand.
type SegmentsCmd struct {
	FileID string `arg:"" name:"file-id" help:"Stored file ID"`
	Full   bool   `help:"Print full segment text"`
}
