package ports

// Copier copies private scripts and module trees into the build output.
//
//go:generate mockgen -source=copier.go -destination=mocks/mock_copier.go -package=mocks
type Copier interface {
	// CopyFile copies src into dstDir keeping its base name and mode.
	CopyFile(src, dstDir string) error

	// CopyTree copies the directory src to dst recursively.
	CopyTree(src, dst string) error
}
