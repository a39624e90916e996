package vivian

import (
	"context"
	"time"
)

// File represents a stored resource: a fetched page, a cached download or a
// local file taken into the store.
type File struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SourceURL string          `json:"sourceUrl"`
	Category  ContentCategory `json:"category"`
	Content   []byte          `json:"-"`
	Size      int64           `json:"size"`

	// Summary is a short description, usually the page excerpt.
	Summary string `json:"summary"`

	// ContentHash is the hex xxhash of Content and is used to skip
	// re-ingesting unchanged resources.
	ContentHash string `json:"contentHash"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the file contains invalid fields.
func (f *File) Validate() error {
	if f.Name == "" {
		return Errorf(EINVALID, "file name required")
	}
	if len(f.Content) == 0 {
		return Errorf(EINVALID, "file content required")
	}
	return nil
}

// FileService represents a service for managing stored files.
type FileService interface {
	// CreateFile stores a new file and assigns its ID, size, hash and
	// creation time.
	CreateFile(ctx context.Context, file *File) error

	// FindFileByID retrieves a file by ID.
	// Returns ENOTFOUND if the file does not exist.
	FindFileByID(ctx context.Context, id string) (*File, error)

	// FindFiles retrieves files matching the filter, newest first.
	// File content is not loaded.
	FindFiles(ctx context.Context, filter FileFilter) ([]*File, error)

	// DeleteFile permanently removes a file and its segments.
	// Returns ENOTFOUND if the file does not exist.
	DeleteFile(ctx context.Context, id string) error
}

// FileFilter represents a filter for FindFiles.
type FileFilter struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Segment is one stored chunk of a file's text.
type Segment struct {
	ID      string `json:"id"`
	FileID  string `json:"fileId"`
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`

	// Length is the rune count of Text.
	Length int `json:"length"`

	// Tokens is the token count of Text.
	Tokens int `json:"tokens"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the segment contains invalid fields.
func (s *Segment) Validate() error {
	if s.FileID == "" {
		return Errorf(EINVALID, "segment file ID required")
	}
	if s.Text == "" {
		return Errorf(EINVALID, "segment text required")
	}
	return nil
}

// SegmentService represents a service for managing stored segments.
type SegmentService interface {
	// CreateSegments stores segments in a single transaction.
	CreateSegments(ctx context.Context, segments []*Segment) error

	// FindSegments retrieves segments matching the filter, ordered by
	// file and ordinal.
	FindSegments(ctx context.Context, filter SegmentFilter) ([]*Segment, error)

	// DeleteSegmentsByFile removes all segments of a file.
	DeleteSegmentsByFile(ctx context.Context, fileID string) error
}

// SegmentFilter represents a filter for FindSegments.
type SegmentFilter struct {
	FileID *string `json:"fileId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
