package vivian

// CachedFile describes one entry of the output-directory cache.
type CachedFile struct {
	Name string
	Size int64
}

// Cache is the set of fetched resources waiting in the output directory.
type Cache interface {
	// List returns the cached files sorted by name. A missing directory is
	// an empty cache.
	List() ([]CachedFile, error)

	// Read returns the content of a cached file.
	// Returns ENOTFOUND if the file does not exist.
	Read(name string) ([]byte, error)

	// Clear removes every cached file but keeps the directory.
	Clear() error
}
