package mock

import (
	"context"

	"github.com/leocbehe/vivian"
)

var _ vivian.FileService = (*FileService)(nil)

// FileService is a mock implementation of vivian.FileService.
type FileService struct {
	CreateFileFn   func(ctx context.Context, file *vivian.File) error
	FindFileByIDFn func(ctx context.Context, id string) (*vivian.File, error)
	FindFilesFn    func(ctx context.Context, filter vivian.FileFilter) ([]*vivian.File, error)
	DeleteFileFn   func(ctx context.Context, id string) error
}

func (s *FileService) CreateFile(ctx context.Context, file *vivian.File) error {
	return s.CreateFileFn(ctx, file)
}

func (s *FileService) FindFileByID(ctx context.Context, id string) (*vivian.File, error) {
	return s.FindFileByIDFn(ctx, id)
}

func (s *FileService) FindFiles(ctx context.Context, filter vivian.FileFilter) ([]*vivian.File, error) {
	return s.FindFilesFn(ctx, filter)
}

func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	return s.DeleteFileFn(ctx, id)
}

var _ vivian.SegmentService = (*SegmentService)(nil)

// SegmentService is a mock implementation of vivian.SegmentService.
type SegmentService struct {
	CreateSegmentsFn       func(ctx context.Context, segments []*vivian.Segment) error
	FindSegmentsFn         func(ctx context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error)
	DeleteSegmentsByFileFn func(ctx context.Context, fileID string) error
}

func (s *SegmentService) CreateSegments(ctx context.Context, segments []*vivian.Segment) error {
	return s.CreateSegmentsFn(ctx, segments)
}

func (s *SegmentService) FindSegments(ctx context.Context, filter vivian.SegmentFilter) ([]*vivian.Segment, error) {
	return s.FindSegmentsFn(ctx, filter)
}

func (s *SegmentService) DeleteSegmentsByFile(ctx context.Context, fileID string) error {
	return s.DeleteSegmentsByFileFn(ctx, fileID)
}
