package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// NameCache maps bare library names to their mangled on-disk names.
type NameCache struct {
	names map[string]string
}

// NewNameCache creates a cache seeded with entries.
func NewNameCache(entries map[string]string) *NameCache {
	c := &NameCache{names: make(map[string]string, len(entries))}
	maps.Copy(c.names, entries)
	return c
}

// Record stores mangled under name and reports whether the cache changed.
// Recording the same value twice is a no-op.
func (c *NameCache) Record(name, mangled string) bool {
	if current, ok := c.names[name]; ok && current == mangled {
		return false
	}
	c.names[name] = mangled
	return true
}

// Lookup returns the mangled name for a bare name.
func (c *NameCache) Lookup(name string) (string, bool) {
	m, ok := c.names[name]
	return m, ok
}

// Translate substitutes every known library name with its mangled name.
func (c *NameCache) Translate(libraries []string) []string {
	if libraries == nil {
		return nil
	}
	out := make([]string, len(libraries))
	for i, lib := range libraries {
		if m, ok := c.names[lib]; ok {
			out[i] = m
			continue
		}
		out[i] = lib
	}
	return out
}

// Snapshot returns a copy of the mapping.
func (c *NameCache) Snapshot() map[string]string {
	return maps.Clone(c.names)
}

// Len returns the number of entries.
func (c *NameCache) Len() int {
	return len(c.names)
}

// SearchPathSet is an ordered directory list, most recently produced first.
type SearchPathSet struct {
	dirs []string
}

// NewSearchPathSet creates a set from dirs, dropping repeats (first wins).
func NewSearchPathSet(dirs []string) *SearchPathSet {
	s := &SearchPathSet{}
	for _, d := range dirs {
		if d != "" && !slices.Contains(s.dirs, d) {
			s.dirs = append(s.dirs, d)
		}
	}
	return s
}

// Record puts dir at the front, moving it there if it is already known.
// It reports whether the order changed.
func (s *SearchPathSet) Record(dir string) bool {
	if len(s.dirs) > 0 && s.dirs[0] == dir {
		return false
	}
	if i := slices.Index(s.dirs, dir); i >= 0 {
		s.dirs = slices.Delete(s.dirs, i, i+1)
	}
	s.dirs = slices.Insert(s.dirs, 0, dir)
	return true
}

// Dirs returns a copy of the directories in priority order.
func (s *SearchPathSet) Dirs() []string {
	return slices.Clone(s.dirs)
}

// Len returns the number of directories.
func (s *SearchPathSet) Len() int {
	return len(s.dirs)
}

// MangledLibraryName derives the cache key and mangled name from a shared
// library file name: "libfoo.so" gives ("foo", "foo") and
// "libfoo.cpython-36m.so" gives ("foo", "foo.cpython-36m").
func MangledLibraryName(filename string) (key, mangled string, ok bool) {
	base := filepath.Base(filename)
	base = strings.TrimPrefix(base, "lib")
	for _, suffix := range []string{".so", ".dylib"} {
		if trimmed, found := strings.CutSuffix(base, suffix); found {
			base = trimmed
			break
		}
	}
	if base == "" {
		return "", "", false
	}
	key, _, _ = strings.Cut(base, ".")
	if key == "" {
		return "", "", false
	}
	return key, base, true
}

// MergeSearchDirs joins directory lists, keeping the first occurrence of each.
func MergeSearchDirs(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, d := range list {
			if d != "" && !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}
