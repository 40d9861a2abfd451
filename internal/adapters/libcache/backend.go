package libcache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.CacheBackend        = (*FileBackend)(nil)
	_ ports.CacheBackend        = (*MemoryBackend)(nil)
	_ ports.CacheBackendFactory = FileFactory{}
)

// FileFactory opens file backends inside Dir.
type FileFactory struct {
	Dir string
}

// Open returns the file backend for tag.
func (f FileFactory) Open(tag string) ports.CacheBackend {
	return NewFileBackend(f.Dir, tag)
}

// FileBackend keeps the caches in two JSON files named after a runtime tag.
type FileBackend struct {
	pathFile   string
	mangleFile string
}

// NewFileBackend creates a backend storing .lib-path.<tag> and .lib-mangle.<tag> in dir.
func NewFileBackend(dir, tag string) *FileBackend {
	return &FileBackend{
		pathFile:   filepath.Join(dir, domain.LibraryPathCacheFile(tag)),
		mangleFile: filepath.Join(dir, domain.LibraryMangleCacheFile(tag)),
	}
}

// LoadPaths reads the search path file.
func (b *FileBackend) LoadPaths() ([]string, error) {
	var paths []string
	if err := readJSON(b.pathFile, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// SavePaths replaces the search path file.
func (b *FileBackend) SavePaths(paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	return writeJSON(b.pathFile, paths)
}

// LoadNames reads the mangle file.
func (b *FileBackend) LoadNames() (map[string]string, error) {
	var names map[string]string
	if err := readJSON(b.mangleFile, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveNames replaces the mangle file.
func (b *FileBackend) SaveNames(names map[string]string) error {
	if names == nil {
		names = map[string]string{}
	}
	return writeJSON(b.mangleFile, names)
}

// Clear removes both files.
func (b *FileBackend) Clear() error {
	for _, file := range []string{b.pathFile, b.mangleFile} {
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, "failed to remove library cache"), "path", file)
		}
	}
	return nil
}

// Location returns the search path file followed by the mangle file.
func (b *FileBackend) Location() string {
	return b.pathFile + ", " + b.mangleFile
}

func readJSON(path string, v any) error {
	//nolint:gosec // Path is built from the cache directory and runtime tag
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read library cache"), "path", path)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal library cache"), "path", path)
	}
	return nil
}

// writeJSON replaces path atomically through a temp file in the same directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	return nil
}

// MemoryBackend keeps the caches in memory. It is used by tests and dry runs.
type MemoryBackend struct {
	mu    sync.Mutex
	paths []string
	names map[string]string
	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryBackend creates a backend seeded with paths and names.
func NewMemoryBackend(paths []string, names map[string]string) *MemoryBackend {
	return &MemoryBackend{paths: slices.Clone(paths), names: maps.Clone(names)}
}

// LoadPaths returns the stored paths.
func (b *MemoryBackend) LoadPaths() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.paths), nil
}

// SavePaths stores paths.
func (b *MemoryBackend) SavePaths(paths []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = slices.Clone(paths)
	b.Saves++
	return nil
}

// LoadNames returns the stored names.
func (b *MemoryBackend) LoadNames() (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.names), nil
}

// SaveNames stores names.
func (b *MemoryBackend) SaveNames(names map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = maps.Clone(names)
	b.Saves++
	return nil
}

// Clear drops everything.
func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = nil
	b.names = nil
	return nil
}

// Location returns "memory".
func (b *MemoryBackend) Location() string {
	return "memory"
}
