package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/leocbehe/vivian"
)

// Ensure Cache implements vivian.Cache at compile time.
var _ vivian.Cache = (*Cache)(nil)

// Cache exposes the files a Writer left in the output directory so they can
// be ingested later.
type Cache struct {
	dir string
}

// NewCache creates a Cache over dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) List() ([]vivian.CachedFile, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, vivian.WrapError(vivian.EIO, err, "cannot read %s", c.dir)
	}

	// os.ReadDir returns entries sorted by name.
	files := make([]vivian.CachedFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, vivian.WrapError(vivian.EIO, err, "cannot stat %s", e.Name())
		}
		files = append(files, vivian.CachedFile{Name: e.Name(), Size: info.Size()})
	}
	return files, nil
}

func (c *Cache) Read(name string) ([]byte, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return nil, vivian.Errorf(vivian.EINVALID, "invalid cache entry %q", name)
	}

	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, vivian.Errorf(vivian.ENOTFOUND, "cache entry %q not found", name)
	}
	if err != nil {
		return nil, vivian.WrapError(vivian.EIO, err, "cannot read %s", name)
	}
	return data, nil
}

func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return vivian.WrapError(vivian.EIO, err, "cannot read %s", c.dir)
	}

	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return vivian.WrapError(vivian.EIO, err, "cannot remove %s", e.Name())
		}
	}
	return nil
}
