package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/leocbehe/vivian"
)

// Ensure LoggingSegmentService implements vivian.SegmentService.
var _ vivian.SegmentService = (*LoggingSegmentService)(nil)

// LoggingSegmentService wraps a SegmentService and logs writes.
type LoggingSegmentService struct {
	next   vivian.SegmentService
	logger *slog.Logger
}

// NewLoggingSegmentService creates a new LoggingSegmentService.
func NewLoggingSegmentService(next vivian.SegmentService, logger *slog.Logger) *LoggingSegmentService {
	return &LoggingSegmentService{next: next, logger: logger}
}

// CreateSegments delegates to the wrapped service and logs the batch.
func (s *LoggingSegmentService) CreateSegments(ctx context.Context, segments []*vivian.Segment) (err error) {
	defer func(begin time.Time) {
		var fileID string
		tokens := 0
		for _, seg := range segments {
			fileID = seg.FileID
			tokens += seg.Tokens
		}
		s.logger.Info("create segments",
			"file", fileID,
			"count", len(segments),
			"tokens", tokens,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSegments(ctx, segments)
}

// FindSegments delegates to the wrapped service.
func (s *LoggingSegmentService) FindSegments(ctx context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error) {
	return s.next.FindSegments(ctx, filter)
}

// DeleteSegmentsByFile delegates to the wrapped service and logs the removal.
func (s *LoggingSegmentService) DeleteSegmentsByFile(ctx context.Context, fileID string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete segments",
			"file", fileID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSegmentsByFile(ctx, fileID)
}
