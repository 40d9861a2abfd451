package ports

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// SourceResolver expands manifest source entries into concrete files.
type SourceResolver interface {
	// ResolveSources expands globs and directories, keeping the order of
	// patterns and dropping repeats.
	ResolveSources(patterns []string) ([]string, error)
}

// OutputVerifier checks that produced files exist.
type OutputVerifier interface {
	// VerifyOutputs reports whether every path exists.
	VerifyOutputs(paths []string) (bool, error)
}
