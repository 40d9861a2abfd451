package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Supported host operating systems.
const (
	OSDarwin = "darwin"
	OSLinux  = "linux"
)

// Platform describes the host the driver builds for.
type Platform struct {
	OS   string
	Arch string
	// WordSize is the machine word size in bits; zero when unknown.
	WordSize int
}

// NewPlatform derives the word size from a GOARCH-style architecture name.
func NewPlatform(goos, arch string) Platform {
	return Platform{OS: goos, Arch: arch, WordSize: WordSizeForArch(arch)}
}

// WordSizeForArch maps an architecture name to its word size in bits.
func WordSizeForArch(arch string) int {
	switch arch {
	case "amd64", "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64", "mips64", "mips64le", "x86_64", "aarch64":
		return 64
	case "386", "arm", "mips", "mipsle", "i386", "i686":
		return 32
	default:
		return 0
	}
}

// String returns os/arch.
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Bundling reports whether shared objects must be rewritten to dynamic libraries.
func (p Platform) Bundling() bool {
	return p.OS == OSDarwin
}

// SupportsFortran reports whether the Fortran recipe is available on this host.
func (p Platform) SupportsFortran() bool {
	return p.OS == OSDarwin || p.OS == OSLinux
}

// WordSizeFlag returns -m32 or -m64; ok is false when the word size is unknown.
func (p Platform) WordSizeFlag() (string, bool) {
	switch p.WordSize {
	case 32:
		return "-m32", true
	case 64:
		return "-m64", true
	default:
		return "", false
	}
}

// SharedSuffix is the native dynamic library suffix.
func (p Platform) SharedSuffix() string {
	if p.Bundling() {
		return ".dylib"
	}
	return ".so"
}

// SharedObjectFlags are the default flags of the shared-object linker.
func (p Platform) SharedObjectFlags() []string {
	if p.Bundling() {
		return []string{"-bundle", "-undefined", "dynamic_lookup"}
	}
	return []string{"-shared"}
}

// DynamicLibraryFlags rewrites the bundle flag into the dynamic library flag.
func (p Platform) DynamicLibraryFlags() []string {
	flags := p.SharedObjectFlags()
	for i, f := range flags {
		if f == "-bundle" {
			flags[i] = "-dynamiclib"
		}
	}
	return flags
}

// RPathFlag embeds a search path relative to the binary's own location.
func (p Platform) RPathFlag(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if p.Bundling() {
		return "-Wl,-rpath,@loader_path/" + rel
	}
	return "-Wl,-rpath,$ORIGIN/" + rel
}

// RuntimeDirFlag is the runtime library directory option of the default toolchain.
func (p Platform) RuntimeDirFlag(dir string) string {
	if p.Bundling() {
		return "-L" + dir
	}
	return "-Wl,-R" + dir
}

// PlatformCompileFlags returns the default per-platform flags appended to
// every path flag entry. -fopenmp is withheld on linux: it crashes setjy.
func PlatformCompileFlags(goos string) []string {
	switch goos {
	case OSLinux:
		return []string{"-fcx-fortran-rules"}
	default:
		return nil
	}
}

// UnsupportedPlatformError reports a host without a Fortran recipe.
func UnsupportedPlatformError(p Platform) error {
	return zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no fortran recipe for "+p.String()), "platform", p.String())
}
