package ports

import "go.trai.ch/ccdrive/internal/core/domain"

// ObjectStore defines the interface for storing and retrieving object records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ObjectStore interface {
	// Get retrieves the record for an object path.
	// Returns nil, nil if not found.
	Get(object string) (*domain.ObjectInfo, error)

	// Put stores the record.
	Put(info domain.ObjectInfo) error

	// Clear removes every record.
	Clear() error
}
