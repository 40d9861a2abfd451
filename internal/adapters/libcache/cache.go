// Package libcache persists the library search path set and the library
// name mangle map between driver invocations.
package libcache

import (
	"sync"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
)

var _ ports.LibraryCache = (*Cache)(nil)

// Cache is the library cache handle passed to the driver.
// Every record is written through to the backend immediately.
type Cache struct {
	mu      sync.Mutex
	backend ports.CacheBackend
	logger  ports.Logger
	paths   *domain.SearchPathSet
	names   *domain.NameCache
}

// Open loads both caches from backend. Unreadable or corrupt state is
// reported as a warning and the cache starts empty.
func Open(backend ports.CacheBackend, logger ports.Logger) *Cache {
	c := &Cache{backend: backend, logger: logger}

	paths, err := backend.LoadPaths()
	if err != nil {
		logger.Warn("library search paths reset: " + err.Error())
		paths = nil
	}
	c.paths = domain.NewSearchPathSet(paths)

	names, err := backend.LoadNames()
	if err != nil {
		logger.Warn("library name map reset: " + err.Error())
		names = nil
	}
	c.names = domain.NewNameCache(names)

	return c
}

// SearchPaths returns the discovered library directories, most recent first.
func (c *Cache) SearchPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paths.Dirs()
}

// Translate substitutes known bare library names with their mangled names.
func (c *Cache) Translate(libraries []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.names.Translate(libraries)
}

// Names returns a copy of the name mapping.
func (c *Cache) Names() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.names.Snapshot()
}

// RecordSearchPath moves dir to the front of the search paths and persists them.
func (c *Cache) RecordSearchPath(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paths.Record(dir) {
		return nil
	}
	return c.backend.SavePaths(c.paths.Dirs())
}

// RecordLibrary maps a bare name to its mangled name and persists the mapping.
func (c *Cache) RecordLibrary(name, mangled string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.names.Record(name, mangled) {
		return nil
	}
	return c.backend.SaveNames(c.names.Snapshot())
}

// Clear drops both caches in memory and in the backend.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paths = domain.NewSearchPathSet(nil)
	c.names = domain.NewNameCache(nil)
	return c.backend.Clear()
}

// Location describes where the caches are persisted.
func (c *Cache) Location() string {
	return c.backend.Location()
}
