package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, db *sqlite.DB, name string) *vivian.File {
	t.Helper()
	file := &vivian.File{
		Name:      name,
		SourceURL: "https://example.com/" + name,
		Category:  vivian.CategoryHTML,
		Content:   []byte("content of " + name),
	}
	require.NoError(t, sqlite.NewFileService(db).CreateFile(context.Background(), file))
	return file
}

func TestFileService_CreateFile(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, size, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)

		file := &vivian.File{Name: "a.html", Content: []byte("hello")}
		err := svc.CreateFile(context.Background(), file)

		require.NoError(t, err)
		assert.NotEmpty(t, file.ID)
		assert.Equal(t, int64(5), file.Size)
		assert.Len(t, file.ContentHash, 16)
		assert.False(t, file.CreatedAt.IsZero())
	})

	t.Run("same content gets the same hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		a := &vivian.File{Name: "a", Content: []byte("same")}
		b := &vivian.File{Name: "b", Content: []byte("same")}
		c := &vivian.File{Name: "c", Content: []byte("different")}
		require.NoError(t, svc.CreateFile(ctx, a))
		require.NoError(t, svc.CreateFile(ctx, b))
		require.NoError(t, svc.CreateFile(ctx, c))

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("returns error for invalid file", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)

		err := svc.CreateFile(context.Background(), &vivian.File{Name: "empty"})

		require.Error(t, err)
		assert.Equal(t, vivian.EINVALID, vivian.ErrorCode(err))
	})
}

func TestFileService_FindFileByID(t *testing.T) {
	t.Parallel()

	t.Run("returns file with content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		created := &vivian.File{
			Name:      "report.pdf",
			SourceURL: "https://example.com/report.pdf",
			Category:  vivian.CategoryPDF,
			Content:   []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff},
			Summary:   "Quarterly report",
		}
		require.NoError(t, svc.CreateFile(ctx, created))

		found, err := svc.FindFileByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "report.pdf", found.Name)
		assert.Equal(t, "https://example.com/report.pdf", found.SourceURL)
		assert.Equal(t, vivian.CategoryPDF, found.Category)
		assert.Equal(t, created.Content, found.Content)
		assert.Equal(t, int64(6), found.Size)
		assert.Equal(t, "Quarterly report", found.Summary)
		assert.Equal(t, created.ContentHash, found.ContentHash)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)

		_, err := svc.FindFileByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, vivian.ENOTFOUND, vivian.ErrorCode(err))
	})
}

func TestFileService_FindFiles(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first without content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestFile(t, db, "first")
		createTestFile(t, db, "second")
		createTestFile(t, db, "third")

		files, err := sqlite.NewFileService(db).FindFiles(context.Background(), vivian.FileFilter{})

		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, "third", files[0].Name)
		assert.Equal(t, "first", files[2].Name)
		assert.Nil(t, files[0].Content)
		assert.Equal(t, int64(len("content of third")), files[0].Size)
	})

	t.Run("filters by fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a := createTestFile(t, db, "a")
		createTestFile(t, db, "b")
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		byName := "a"
		files, err := svc.FindFiles(ctx, vivian.FileFilter{Name: &byName})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, a.ID, files[0].ID)

		files, err = svc.FindFiles(ctx, vivian.FileFilter{SourceURL: &a.SourceURL})
		require.NoError(t, err)
		require.Len(t, files, 1)

		files, err = svc.FindFiles(ctx, vivian.FileFilter{ContentHash: &a.ContentHash})
		require.NoError(t, err)
		require.Len(t, files, 1)

		files, err = svc.FindFiles(ctx, vivian.FileFilter{ID: &a.ID})
		require.NoError(t, err)
		require.Len(t, files, 1)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		for i := range 5 {
			createTestFile(t, db, fmt.Sprintf("f%d", i))
		}
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		page, err := svc.FindFiles(ctx, vivian.FileFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "f3", page[0].Name)
		assert.Equal(t, "f2", page[1].Name)

		rest, err := svc.FindFiles(ctx, vivian.FileFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, "f0", rest[1].Name)
	})
}

func TestFileService_DeleteFile(t *testing.T) {
	t.Parallel()

	t.Run("removes file and its segments", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		file := createTestFile(t, db, "doc")
		segments := sqlite.NewSegmentService(db)
		ctx := context.Background()
		require.NoError(t, segments.CreateSegments(ctx, []*vivian.Segment{
			{FileID: file.ID, Ordinal: 0, Text: "one"},
			{FileID: file.ID, Ordinal: 1, Text: "two"},
		}))

		err := sqlite.NewFileService(db).DeleteFile(ctx, file.ID)
		require.NoError(t, err)

		_, err = sqlite.NewFileService(db).FindFileByID(ctx, file.ID)
		assert.Equal(t, vivian.ENOTFOUND, vivian.ErrorCode(err))
		found, err := segments.FindSegments(ctx, vivian.SegmentFilter{FileID: &file.ID})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewFileService(db).DeleteFile(context.Background(), "missing")

		assert.Equal(t, vivian.ENOTFOUND, vivian.ErrorCode(err))
	})
}
