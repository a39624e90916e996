package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/leocbehe/vivian"
)

// Ensure LoggingExtractor implements vivian.Extractor.
var _ vivian.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   vivian.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next vivian.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how much text was kept.
func (e *LoggingExtractor) Extract(html string) (result *vivian.ExtractResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html)}
		if result != nil {
			attrs = append(attrs,
				"title", result.Title,
				"chars", utf8.RuneCountInString(result.Text),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
