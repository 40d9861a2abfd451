// Package config loads the toolchain provider file and the build manifest.
package config

import (
	"os"
	"slices"
	"strings"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// defaultBaseFlags apply when the manifest does not set base_flags.
var defaultBaseFlags = []string{"-fPIC"}

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// LoadToolchain reads the toolchain provider file.
//
// The document is a mapping. Nested mappings are flattened into dotted keys,
// so "build: {compiler: {cc: gcc}}" and "build.compiler.cc: gcc" are the same
// property. Values are a string or a list of strings; property order is kept.
func (l *Loader) LoadToolchain(path string) (*domain.ToolchainConfig, error) {
	var doc yaml.Node
	if err := readAndUnmarshalYAML(path, &doc); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return domain.NewToolchainConfig(nil), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "toolchain must be a mapping"), "path", path)
	}

	var entries []domain.ToolchainEntry
	if err := flatten("", root, &entries); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return domain.NewToolchainConfig(entries), nil
}

func flatten(prefix string, node *yaml.Node, entries *[]domain.ToolchainEntry) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}

		switch valueNode.Kind {
		case yaml.MappingNode:
			if err := flatten(key, valueNode, entries); err != nil {
				return err
			}
		case yaml.ScalarNode:
			var values []string
			if valueNode.Tag != "!!null" {
				values = []string{valueNode.Value}
			}
			*entries = append(*entries, domain.ToolchainEntry{Key: key, Values: values})
		case yaml.SequenceNode:
			values := make([]string, 0, len(valueNode.Content))
			for _, item := range valueNode.Content {
				if item.Kind != yaml.ScalarNode {
					return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidToolchainValue, "invalid toolchain property"), "key", key), "line", item.Line)
				}
				if item.Tag == "!!null" {
					values = append(values, "")
					continue
				}
				values = append(values, item.Value)
			}
			*entries = append(*entries, domain.ToolchainEntry{Key: key, Values: values})
		default:
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidToolchainValue, "invalid toolchain property"), "key", key), "line", valueNode.Line)
		}
	}
	return nil
}

// LoadManifest reads and validates the build manifest.
func (l *Loader) LoadManifest(path string) (*domain.Manifest, error) {
	var dto Manifest
	if err := readAndUnmarshalYAML(path, &dto); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	m, err := l.toDomain(&dto)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

func (l *Loader) toDomain(dto *Manifest) (*domain.Manifest, error) {
	if dto.Name == "" {
		return nil, zerr.Wrap(domain.ErrInvalidManifest, "missing name")
	}
	if strings.ContainsAny(dto.Name, `/\`) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "name must not contain path separators"), "name", dto.Name)
	}

	m := &domain.Manifest{
		Name:             dto.Name,
		BuildDir:         dto.BuildDir,
		Sources:          dto.Sources,
		IncludeDirs:      dto.IncludeDirs,
		BaseFlags:        dto.BaseFlags,
		LanguageStandard: dto.Std,
		PlatformFlags:    dto.PlatformFlags,
		Lex:              dto.Lex,
		Yacc:             dto.Yacc,
		GeneratedDir:     dto.GeneratedDir,
		TaskXML:          dto.TaskXML,
		Package: domain.PackageInit{
			FileName: dto.Package.FileName,
			Imports:  dto.Package.Imports,
		},
		PrivateScripts:  dto.PrivateScripts,
		PrivateModules:  dto.PrivateModules,
		RequiredOptions: dto.RequiredOptions,
	}

	if m.BaseFlags == nil {
		m.BaseFlags = slices.Clone(defaultBaseFlags)
	}

	pathFlags := make([]domain.PathFlags, 0, len(dto.PathFlags))
	for i, pf := range dto.PathFlags {
		if pf.Pattern == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "path flag entry without pattern"), "index", i)
		}
		pathFlags = append(pathFlags, domain.PathFlags{Pattern: pf.Pattern, Flags: pf.Flags})
	}
	m.PathFlags = domain.NewPathFlagTable(pathFlags...)

	for i, conv := range dto.XMLConversions {
		if conv.Source == "" || conv.Dest == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "xml conversion needs source and dest"), "index", i)
		}
		m.XMLConversions = append(m.XMLConversions, domain.XMLConversion{Source: conv.Source, Dest: conv.Dest})
	}

	if v := dto.Version; v != nil {
		if v.Script == "" || v.Template == "" || v.Output == "" {
			return nil, zerr.Wrap(domain.ErrInvalidManifest, "version needs script, template and output")
		}
		m.Version = &domain.VersionSpec{
			Script:   v.Script,
			Args:     v.Args,
			Dir:      v.Dir,
			Template: v.Template,
			Output:   v.Output,
			Prefix:   v.Prefix,
			Desc:     v.Desc,
		}
	}

	if e := dto.Executable; e != nil {
		if e.Name == "" {
			return nil, zerr.Wrap(domain.ErrInvalidManifest, "executable without name")
		}
		m.Executable = &domain.ExecutableTarget{
			Name:               e.Name,
			Libraries:          e.Libraries,
			LibraryDirs:        e.LibraryDirs,
			RuntimeLibraryDirs: e.RuntimeLibraryDirs,
			PreArgs:            e.PreArgs,
			PostArgs:           e.PostArgs,
			RPath:              e.RPath,
			LinkFlags:          e.LinkFlags,
			StaticArchives:     e.StaticArchives,
			VendoredFragments:  e.VendoredFragments,
		}
	}

	if c := dto.Closure; c != nil && c.Script != "" {
		m.Closure = &domain.ClosureSpec{Script: c.Script}
	}

	for os := range m.PlatformFlags {
		if os != domain.OSLinux && os != domain.OSDarwin {
			l.Logger.Warn("platform_flags entry for " + os + " is never applied")
		}
	}

	return m, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
