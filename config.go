package vivian

import "time"

// Output formats for extracted HTML content.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Configuration defaults.
const (
	DefaultRequestTimeoutSeconds = 30
	DefaultOutputDirectory       = "tmp_files"
	DefaultConcurrency           = 4
	DefaultRequestsPerSecond     = 2.0
	DefaultEncoding              = "r50k_base"
)

// Config holds the options recognized by the fetch, extract and split
// pipeline. It is built once by the host and passed to each stage.
type Config struct {
	// AggressiveCleaning enables class/id pattern removal and ad-size
	// removal during sanitization.
	AggressiveCleaning bool `yaml:"aggressive_cleaning"`

	// MaxChunkChars bounds the size of each chunk produced by the splitter.
	MaxChunkChars int `yaml:"max_chunk_chars"`

	// RequestTimeoutSeconds is the budget for each HTTP call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// OutputDirectory receives fetched resources.
	OutputDirectory string `yaml:"output_directory"`

	// Concurrency bounds the number of pipelines run at once in a batch.
	Concurrency int `yaml:"concurrency"`

	// RequestsPerSecond is the per-host request rate for batches.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Database is the path of the SQLite database.
	Database string `yaml:"database"`

	// Format selects plain text or markdown output for HTML content.
	Format string `yaml:"format"`

	// Encoding names the tiktoken encoding used to count tokens.
	Encoding string `yaml:"encoding"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		AggressiveCleaning:    false,
		MaxChunkChars:         DefaultMaxChunkChars,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		OutputDirectory:       DefaultOutputDirectory,
		Concurrency:           DefaultConcurrency,
		RequestsPerSecond:     DefaultRequestsPerSecond,
		Format:                FormatText,
		Encoding:              DefaultEncoding,
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.MaxChunkChars <= 0 {
		return Errorf(EINVALID, "max chunk chars must be positive")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return Errorf(EINVALID, "request timeout must be positive")
	}
	if c.OutputDirectory == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive")
	}
	if c.RequestsPerSecond <= 0 {
		return Errorf(EINVALID, "requests per second must be positive")
	}
	switch c.Format {
	case FormatText, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unknown format %q", c.Format)
	}
	return nil
}

// RequestTimeout returns the per-call HTTP budget as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
