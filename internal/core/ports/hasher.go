package ports

import "go.trai.ch/ccdrive/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeInputHash hashes the command vector together with the content of inputs.
	ComputeInputHash(cmd domain.Command, inputs []string) (string, error)
}
