package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultLoaderCacheSize = 8

type cachedCatalog struct {
	catalog *Catalog
	modTime time.Time
}

// Loader loads catalogs by path and keeps recently used ones in memory.
// A cached entry is reused until the file's modification time changes.
type Loader struct {
	cache *lru.Cache[string, cachedCatalog]
	stat  func(string) (os.FileInfo, error)
	load  func(string) (*Catalog, error)
}

// NewLoader constructs a Loader holding up to size catalogs.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = defaultLoaderCacheSize
	}
	cache, err := lru.New[string, cachedCatalog](size)
	if err != nil {
		return nil, fmt.Errorf("catalog cache: %w", err)
	}
	return &Loader{cache: cache, stat: os.Stat, load: Load}, nil
}

// Load returns the catalog at path, using the cache when the file is unchanged.
// An empty path resolves to the embedded default.
func (l *Loader) Load(path string) (*Catalog, error) {
	key := ""
	var modTime time.Time
	if path != "" {
		key = filepath.Clean(path)
		info, err := l.stat(key)
		if err != nil {
			return nil, fmt.Errorf("stat catalog %s: %w", key, err)
		}
		modTime = info.ModTime()
	}

	if entry, ok := l.cache.Get(key); ok && entry.modTime.Equal(modTime) {
		return entry.catalog, nil
	}

	c, err := l.load(key)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cachedCatalog{catalog: c, modTime: modTime})
	return c, nil
}

// Purge drops every cached catalog.
func (l *Loader) Purge() {
	l.cache.Purge()
}
