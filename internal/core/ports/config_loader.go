package ports

import "go.trai.ch/ccdrive/internal/core/domain"

// ConfigLoader defines the interface for loading the toolchain and the build manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadToolchain reads the toolchain provider file, keeping property order.
	LoadToolchain(path string) (*domain.ToolchainConfig, error)

	// LoadManifest reads the build manifest.
	LoadManifest(path string) (*domain.Manifest, error)
}
