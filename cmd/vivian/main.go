package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/fs"
	"github.com/leocbehe/vivian/goquery"
	"github.com/leocbehe/vivian/htmltomarkdown"
	vivhttp "github.com/leocbehe/vivian/http"
	"github.com/leocbehe/vivian/ingest"
	"github.com/leocbehe/vivian/pdf"
	"github.com/leocbehe/vivian/readability"
	vivslog "github.com/leocbehe/vivian/slog"
	"github.com/leocbehe/vivian/sqlite"
	"github.com/leocbehe/vivian/tiktoken"
	"github.com/leocbehe/vivian/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DBPath is used when neither the --db flag nor the config file name a
	// database. Set before calling Run().
	DBPath string

	// Stdin feeds "split -".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vivian"),
		kong.Description("Fetch web resources, extract their main text and split it into chunks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vivian --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := vivian.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", vivian.ErrorMessage(err))
			return err
		}
	}
	if cli.DB != "" {
		cfg.Database = cli.DB
	}
	if cfg.Database == "" {
		cfg.Database = m.DBPath
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cmd := kongCtx.Command()
	switch {
	case strings.HasPrefix(cmd, "fetch"):
		cli.Fetch.Apply(&cfg)
	case strings.HasPrefix(cmd, "text"):
		cli.Text.Apply(&cfg)
	case strings.HasPrefix(cmd, "split"):
		cli.Split.Apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Cache = fs.NewCache(cfg.OutputDirectory)
	deps.PDF = pdf.NewTextExtractor()

	needsDB := cmd == "files" || strings.HasPrefix(cmd, "segments") || cmd == "cache ingest" ||
		(strings.HasPrefix(cmd, "fetch") && cli.Fetch.Store)
	if needsDB {
		if cfg.Database != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
				fmt.Fprintf(stderr, "error: cannot create database directory: %v\n", err)
				return vivian.WrapError(vivian.EIO, err, "cannot create database directory")
			}
		}
		m.DB = sqlite.NewDB(cfg.Database)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set VIVIAN_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
		}
		defer m.Close()

		deps.Files = sqlite.NewFileService(m.DB)
		deps.Segments = vivslog.NewLoggingSegmentService(sqlite.NewSegmentService(m.DB), logger)
	}

	switch {
	case strings.HasPrefix(cmd, "fetch"), strings.HasPrefix(cmd, "text"), cmd == "cache ingest":
		deps.Ingester = m.newIngester(cfg, deps, cmd == "text <url>")
		deps.Sitemaps = vivslog.NewLoggingSitemapService(vivhttp.NewSitemapService(nil), logger)
	}

	return kongCtx.Run(deps)
}

// newIngester wires the pipeline from cfg. Text-only runs do not write to
// the output directory.
func (m *Main) newIngester(cfg vivian.Config, deps *Dependencies, textOnly bool) *ingest.Ingester {
	logger := deps.Logger

	in := &ingest.Ingester{
		Fetcher: vivslog.NewLoggingFetcher(
			vivhttp.NewFetcher(vivhttp.WithTimeout(cfg.RequestTimeout())), logger),
		Extractor: vivslog.NewLoggingExtractor(
			goquery.NewExtractor(goquery.WithAggressiveCleaning(cfg.AggressiveCleaning)), logger),
		Metadata:      readability.NewMetadataReader(),
		Converter:     htmltomarkdown.NewConverter(),
		PDF:           deps.PDF,
		Limiter:       ingest.NewHostLimiter(cfg.RequestsPerSecond),
		Concurrency:   cfg.Concurrency,
		Format:        cfg.Format,
		MaxChunkChars: cfg.MaxChunkChars,
		Aggressive:    cfg.AggressiveCleaning,
		Files:         deps.Files,
		Segments:      deps.Segments,
		Logger:        logger,
	}
	if !textOnly {
		in.Writer = fs.NewWriter(cfg.OutputDirectory)
	}

	tc, err := tiktoken.NewTokenCounter(cfg.Encoding)
	if err != nil {
		logger.Warn("token counter unavailable, using estimates", "encoding", cfg.Encoding, "err", err)
	} else {
		in.TokenCounter = tc
	}
	return in
}

// defaultDBPath names ~/.vivian/vivian.db. The directory is created when a
// command first opens the database.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vivian.db"
	}
	return filepath.Join(home, ".vivian", "vivian.db")
}
