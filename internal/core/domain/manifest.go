package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultLanguageStandard is the C++ standard the C++ profile is fixed to.
const DefaultLanguageStandard = "c++11"

// Manifest describes the project the pipeline builds.
type Manifest struct {
	Name             string
	BuildDir         string
	Sources          []string
	IncludeDirs      []string
	BaseFlags        []string
	LanguageStandard string
	PathFlags        PathFlagTable
	// PlatformFlags overrides PlatformCompileFlags per operating system.
	PlatformFlags   map[string][]string
	Lex             []string
	Yacc            []string
	GeneratedDir    string
	Version         *VersionSpec
	Executable      *ExecutableTarget
	Closure         *ClosureSpec
	XMLConversions  []XMLConversion
	TaskXML         []string
	Package         PackageInit
	PrivateScripts  []string
	PrivateModules  []string
	RequiredOptions []string
}

// VersionSpec configures version-file generation.
type VersionSpec struct {
	Script   string
	Args     []string
	Dir      string
	Template string
	Output   string
	Prefix   string
	Desc     string
}

// ExecutableTarget describes the final program link.
type ExecutableTarget struct {
	Name               string
	Libraries          []string
	LibraryDirs        []string
	RuntimeLibraryDirs []string
	PreArgs            []string
	PostArgs           []string
	// RPath is the library directory relative to the binary.
	RPath string
	// LinkFlags holds per-OS extra link flags.
	LinkFlags map[string][]string
	// StaticArchives are vendored archives linked in this order.
	StaticArchives []string
	// VendoredFragments filter requested libraries already covered by the archives.
	VendoredFragments []string
}

// ClosureSpec configures the one-time module closure script.
type ClosureSpec struct {
	Script string
}

// XMLConversion upgrades Source into Dest when Dest is missing.
type XMLConversion struct {
	Source string
	Dest   string
}

// PackageInit describes the generated package init file.
type PackageInit struct {
	FileName string
	Imports  []string
}

// BuildLayout holds the derived output directories.
type BuildLayout struct {
	TempDir    string
	ModuleDir  string
	PrivateDir string
	BinDir     string
	LibDir     string
}

// Layout derives the build directories from the manifest.
func (m *Manifest) Layout() BuildLayout {
	root := m.BuildDir
	if root == "" {
		root = "build"
	}
	moduleDir := filepath.Join(root, "lib", m.Name)
	privateDir := filepath.Join(moduleDir, "private")
	return BuildLayout{
		TempDir:    filepath.Join(root, "temp"),
		ModuleDir:  moduleDir,
		PrivateDir: privateDir,
		BinDir:     filepath.Join(privateDir, "bin"),
		LibDir:     filepath.Join(privateDir, "lib"),
	}
}

// Standard returns the C++ language standard.
func (m *Manifest) Standard() string {
	if m.LanguageStandard != "" {
		return m.LanguageStandard
	}
	return DefaultLanguageStandard
}

// PlatformCompileFlags returns the manifest override for goos, or the default.
func (m *Manifest) PlatformCompileFlags(goos string) []string {
	if flags, ok := m.PlatformFlags[goos]; ok {
		return slices.Clone(flags)
	}
	return PlatformCompileFlags(goos)
}

// FlagTable returns the path flag table with the platform flags appended.
func (m *Manifest) FlagTable(goos string) PathFlagTable {
	return m.PathFlags.WithPlatformFlags(m.PlatformCompileFlags(goos))
}

// OutputDir returns the directory generated lex/yacc sources go to.
func (m *Manifest) OutputDir() string {
	if m.GeneratedDir != "" {
		return m.GeneratedDir
	}
	return filepath.Join("generated", "include")
}

// ObjectPath maps a source to its object under the temp directory.
func (m *Manifest) ObjectPath(source string) string {
	rel := filepath.Clean(source)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	return filepath.Join(m.Layout().TempDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".o")
}

// RequiredKeys lists the toolchain properties this manifest needs.
func (m *Manifest) RequiredKeys() []string {
	keys := []string{KeyCC, KeyCXX}
	for _, src := range m.Sources {
		if IsFortran(filepath.Ext(src)) {
			keys = append(keys, KeyFortran)
			break
		}
	}
	if len(m.Lex) > 0 {
		keys = append(keys, KeyFlex)
	}
	if len(m.Yacc) > 0 {
		keys = append(keys, KeyBison)
	}
	if len(m.XMLConversions) > 0 || len(m.TaskXML) > 0 {
		keys = append(keys, KeyXMLCasa)
	}
	return keys
}

// Validate checks that tc carries everything the manifest needs before any step runs.
func (m *Manifest) Validate(tc *ToolchainConfig) error {
	if err := tc.Require(m.RequiredKeys()...); err != nil {
		return err
	}
	for _, opt := range m.RequiredOptions {
		if !tc.OptionEnabled(opt) {
			return zerr.With(zerr.Wrap(ErrOptionDisabled, opt+" is switched off"), "option", opt)
		}
	}
	return nil
}

// IsFortran reports whether ext selects the Fortran recipe.
func IsFortran(ext string) bool {
	return ext == ".f" || ext == ".f90"
}
