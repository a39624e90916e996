package sqlite

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leocbehe/vivian"
)

// Compile-time interface verification.
var _ vivian.SegmentService = (*SegmentService)(nil)

// SegmentService implements vivian.SegmentService using SQLite.
type SegmentService struct {
	db *DB
}

// NewSegmentService creates a new SegmentService.
func NewSegmentService(db *DB) *SegmentService {
	return &SegmentService{db: db}
}

// CreateSegments stores segments in one transaction. Each segment gets an
// ID, its rune length and a creation time. Nothing is stored if any segment
// is invalid or its file does not exist.
func (s *SegmentService) CreateSegments(ctx context.Context, segments []*vivian.Segment) error {
	for _, seg := range segments {
		if err := seg.Validate(); err != nil {
			return err
		}
	}
	if len(segments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segments (id, file_id, ordinal, text, length, tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, seg := range segments {
		seg.ID = uuid.New().String()
		seg.Length = utf8.RuneCountInString(seg.Text)
		seg.CreatedAt = now

		if _, err := stmt.ExecContext(ctx, seg.ID, seg.FileID, seg.Ordinal, seg.Text,
			seg.Length, seg.Tokens, formatTime(seg.CreatedAt)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSegments retrieves segments matching the filter ordered by file and
// ordinal.
func (s *SegmentService) FindSegments(ctx context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, file_id, ordinal, text, length, tokens, created_at FROM segments WHERE 1=1")

	if filter.FileID != nil {
		query.WriteString(" AND file_id = ?")
		args = append(args, *filter.FileID)
	}

	query.WriteString(" ORDER BY file_id ASC, ordinal ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []*vivian.Segment
	for rows.Next() {
		var seg vivian.Segment
		var createdAt string

		if err := rows.Scan(&seg.ID, &seg.FileID, &seg.Ordinal, &seg.Text,
			&seg.Length, &seg.Tokens, &createdAt); err != nil {
			return nil, err
		}

		if seg.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		segments = append(segments, &seg)
	}

	return segments, rows.Err()
}

// DeleteSegmentsByFile removes all segments of a file.
func (s *SegmentService) DeleteSegmentsByFile(ctx context.Context, fileID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM segments WHERE file_id = ?", fileID)
	return err
}
