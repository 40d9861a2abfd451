// Package cas stores per-object build records, one JSON file per object.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*Store)(nil)

// Store implements ports.ObjectStore using a file-per-object strategy.
type Store struct {
	dir string
}

// NewStore creates a store below root/.ccdrive/objects.
func NewStore(root string) *Store {
	return &Store{dir: filepath.Join(root, domain.DefaultStorePath())}
}

// Get retrieves the record for an object path.
func (s *Store) Get(object string) (*domain.ObjectInfo, error) {
	filename := s.getFilename(object)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var info domain.ObjectInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &info, nil
}

// Put stores the record.
func (s *Store) Put(info domain.ObjectInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(s.getFilename(info.Object), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear object store"), "path", s.dir)
	}
	return nil
}

// Dir returns the directory holding the records.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) getFilename(object string) string {
	hash := sha256.Sum256([]byte(filepath.Clean(object)))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
