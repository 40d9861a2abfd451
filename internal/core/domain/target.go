package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// TargetKind selects the link recipe.
type TargetKind int

const (
	// TargetSharedObject is the generic target; it links with the platform's
	// untouched shared-object flags unless its name is lib*.so.
	TargetSharedObject TargetKind = iota
	// TargetExecutable links a program with the C++ driver.
	TargetExecutable
	// TargetSharedLibrary links a dynamic library and records it in the library caches.
	TargetSharedLibrary
	// TargetStaticLibrary archives objects.
	TargetStaticLibrary
)

// String returns the CLI name of the kind.
func (k TargetKind) String() string {
	switch k {
	case TargetExecutable:
		return "exe"
	case TargetSharedLibrary:
		return "shared"
	case TargetStaticLibrary:
		return "static"
	default:
		return "generic"
	}
}

// ParseTargetKind parses a CLI target kind.
func ParseTargetKind(s string) (TargetKind, error) {
	switch strings.ToLower(s) {
	case "exe", "executable":
		return TargetExecutable, nil
	case "shared", "shared-library":
		return TargetSharedLibrary, nil
	case "static", "static-library":
		return TargetStaticLibrary, nil
	case "generic", "shared-object", "":
		return TargetSharedObject, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownTargetKind, "cannot link "+s), "kind", s)
	}
}

// IsLibraryName reports whether a file name follows the lib*.so convention.
func IsLibraryName(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "lib") && strings.HasSuffix(base, ".so")
}

// CompileRequest is the input of one compile operation.
type CompileRequest struct {
	Object           string
	Source           string
	Extension        string
	CompilerArgs     []string
	ExtraArgs        []string
	PreprocessorOpts []string
}

// ExtensionOf returns the request extension, falling back to the source suffix.
func (r CompileRequest) ExtensionOf() string {
	if r.Extension != "" {
		return r.Extension
	}
	return filepath.Ext(r.Source)
}

// LinkRequest is the input of one link operation.
type LinkRequest struct {
	Kind               TargetKind
	Objects            []string
	Output             string
	Libraries          []string
	LibraryDirs        []string
	RuntimeLibraryDirs []string
	// ExportedSymbols and BuildTempDir are accepted for toolchain parity; the
	// unix toolchain does not consume them.
	ExportedSymbols []string
	DebugLevel      int
	PreArgs         []string
	PostArgs        []string
	BuildTempDir    string
	// TargetLanguage "c++" selects the C++ linker for shared and generic targets.
	TargetLanguage string
	// NarrowSearch limits library directories to the configured -L directories.
	NarrowSearch bool
}

// LinkPlan is the computed outcome of a link request.
type LinkPlan struct {
	Kind     TargetKind
	Output   string
	Commands []Command
	// SearchDir is recorded at the front of the search path set for shared libraries.
	SearchDir string
	// LibraryKey and LibraryName are recorded in the name cache for shared libraries.
	LibraryKey  string
	LibraryName string
}

// RecordsLibrary reports whether the plan updates the library caches.
func (p LinkPlan) RecordsLibrary() bool {
	return p.Kind == TargetSharedLibrary
}
