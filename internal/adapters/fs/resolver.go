package fs

import (
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// sourceExtensions are the suffixes picked up when a directory is listed as a source.
var sourceExtensions = []string{".c", ".cc", ".cpp", ".cxx", ".C", ".f", ".f90"}

// Resolver implements ports.SourceResolver using filepath.Glob and the Walker.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveSources expands each pattern in order. A glob yields its sorted
// matches, a directory yields every source file below it, a plain path
// yields itself. Patterns that match nothing are an error.
func (r *Resolver) ResolveSources(patterns []string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", pattern)
		}

		if len(matches) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "pattern matches nothing"), "path", pattern)
		}
		sort.Strings(matches)

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to stat source"), "path", match)
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			for file := range r.walker.WalkFiles(match, nil) {
				if slices.Contains(sourceExtensions, filepath.Ext(file)) {
					add(file)
				}
			}
		}
	}

	return result, nil
}
