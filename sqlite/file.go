package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leocbehe/vivian"
)

// Compile-time interface verification.
var _ vivian.FileService = (*FileService)(nil)

// FileService implements vivian.FileService using SQLite.
type FileService struct {
	db *DB
}

// NewFileService creates a new FileService.
func NewFileService(db *DB) *FileService {
	return &FileService{db: db}
}

// CreateFile stores a new file.
func (s *FileService) CreateFile(ctx context.Context, file *vivian.File) error {
	if err := file.Validate(); err != nil {
		return err
	}

	file.ID = uuid.New().String()
	file.Size = int64(len(file.Content))
	file.ContentHash = hashContent(file.Content)
	file.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, name, source_url, category, content, size, summary, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, file.ID, file.Name, file.SourceURL, string(file.Category), file.Content, file.Size,
		file.Summary, file.ContentHash, formatTime(file.CreatedAt))

	return err
}

// FindFileByID retrieves a file, including its content, by ID.
func (s *FileService) FindFileByID(ctx context.Context, id string) (*vivian.File, error) {
	var file vivian.File
	var category, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, category, content, size, summary, content_hash, created_at
		FROM files
		WHERE id = ?
	`, id).Scan(&file.ID, &file.Name, &file.SourceURL, &category, &file.Content, &file.Size,
		&file.Summary, &file.ContentHash, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, vivian.Errorf(vivian.ENOTFOUND, "file not found")
	}
	if err != nil {
		return nil, err
	}

	file.Category = vivian.ContentCategory(category)
	if file.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &file, nil
}

// FindFiles retrieves files matching the filter without their content.
func (s *FileService) FindFiles(ctx context.Context, filter vivian.FileFilter) ([]*vivian.File, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, category, size, summary, content_hash, created_at FROM files WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*vivian.File
	for rows.Next() {
		var file vivian.File
		var category, createdAt string

		if err := rows.Scan(&file.ID, &file.Name, &file.SourceURL, &category, &file.Size,
			&file.Summary, &file.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		file.Category = vivian.ContentCategory(category)
		if file.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		files = append(files, &file)
	}

	return files, rows.Err()
}

// DeleteFile permanently removes a file. Its segments are removed by the
// foreign key cascade.
func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return vivian.Errorf(vivian.ENOTFOUND, "file not found")
	}

	return nil
}
