package ports

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// LibraryCache is the handle the driver records produced libraries into.
type LibraryCache interface {
	// SearchPaths returns the discovered library directories, most recent first.
	SearchPaths() []string

	// Translate substitutes known bare library names with their mangled names.
	Translate(libraries []string) []string

	// RecordSearchPath moves dir to the front of the search paths and persists them.
	RecordSearchPath(dir string) error

	// RecordLibrary maps a bare name to its mangled name and persists the mapping.
	RecordLibrary(name, mangled string) error

	// Names returns a copy of the name mapping.
	Names() map[string]string
}

// CacheBackend stores the two library caches.
type CacheBackend interface {
	// LoadPaths returns the persisted search paths; missing state is not an error.
	LoadPaths() ([]string, error)

	// SavePaths replaces the persisted search paths.
	SavePaths(paths []string) error

	// LoadNames returns the persisted name mapping; missing state is not an error.
	LoadNames() (map[string]string, error)

	// SaveNames replaces the persisted name mapping.
	SaveNames(names map[string]string) error

	// Clear removes the persisted state.
	Clear() error

	// Location describes where the state lives.
	Location() string
}

// CacheBackendFactory opens a backend for a runtime tag.
type CacheBackendFactory interface {
	Open(tag string) CacheBackend
}
