package ports

import "go.trai.ch/ccdrive/internal/core/domain"

// SourceGenerator renders generated sources that need no external tool.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type SourceGenerator interface {
	// WriteVersionFile substitutes the version placeholders of the template into output.
	WriteVersionFile(spec domain.VersionSpec, version domain.Version) error

	// WritePackageInit writes the package init file listing the generated tasks.
	WritePackageInit(moduleDir, name string, pkg domain.PackageInit, tasks []string) error
}
