package mock

import "github.com/leocbehe/vivian"

var _ vivian.Cache = (*Cache)(nil)

// Cache is a mock implementation of vivian.Cache.
type Cache struct {
	ListFn  func() ([]vivian.CachedFile, error)
	ReadFn  func(name string) ([]byte, error)
	ClearFn func() error
}

func (c *Cache) List() ([]vivian.CachedFile, error) {
	return c.ListFn()
}

func (c *Cache) Read(name string) ([]byte, error) {
	return c.ReadFn(name)
}

func (c *Cache) Clear() error {
	return c.ClearFn()
}
