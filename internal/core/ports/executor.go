// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/ccdrive/internal/core/domain"
)

// Executor defines the interface for running external tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run blocks until the command exits and returns its captured output.
	//
	// A nonzero exit returns an error together with the result, so callers
	// can report the tool's diagnostic text.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
