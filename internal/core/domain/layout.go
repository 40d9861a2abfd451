package domain

import "path/filepath"

const (
	// WorkDirName is the name of the internal workspace directory.
	WorkDirName = ".ccdrive"

	// StoreDirName is the name of the object record store directory.
	StoreDirName = "objects"

	// ToolchainFileName is the default name of the toolchain provider file.
	ToolchainFileName = "toolchain.yaml"

	// ManifestFileName is the default name of the build manifest.
	ManifestFileName = "ccdrive.yaml"

	// LibraryPathCachePrefix prefixes the persisted library search path file.
	LibraryPathCachePrefix = ".lib-path."

	// LibraryMangleCachePrefix prefixes the persisted library name mangle file.
	LibraryMangleCachePrefix = ".lib-mangle."

	// ClosureMarkerFile records that the module closure script already ran.
	ClosureMarkerFile = ".created.closure"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorePath returns the default path for the object record store.
// It joins .ccdrive and objects.
func DefaultStorePath() string {
	return filepath.Join(WorkDirName, StoreDirName)
}

// LibraryPathCacheFile returns the search path cache file name for a runtime tag.
func LibraryPathCacheFile(tag string) string {
	return LibraryPathCachePrefix + tag
}

// LibraryMangleCacheFile returns the name cache file name for a runtime tag.
func LibraryMangleCacheFile(tag string) string {
	return LibraryMangleCachePrefix + tag
}
