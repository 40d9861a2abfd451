// Package codegen renders the sources the build writes without an external tool.
package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultVersionPrefix names the placeholders when the manifest sets no prefix.
const DefaultVersionPrefix = "VERSION"

// DefaultInitFile is the package init file name.
const DefaultInitFile = "__init__.py"

var _ ports.SourceGenerator = (*Generator)(nil)

var initTemplate = template.Must(template.New("init").Parse(`###########################################################################
########################## generated by ccdrive ###########################
###########################################################################
from __future__ import absolute_import
__name__ = '{{ .Name }}'
__all__ = [
{{- range .Tasks }}
            '{{ . }}',
{{- end }}
          ]
{{ range .Tasks }}
from .{{ . }} import {{ . }}
{{- end }}
{{ range .Imports }}
{{ . }}
{{- end }}
`))

type initData struct {
	Name    string
	Tasks   []string
	Imports []string
}

// Generator writes version files and package init files.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// WriteVersionFile substitutes the version placeholders of spec.Template into spec.Output.
func (g *Generator) WriteVersionFile(spec domain.VersionSpec, version domain.Version) error {
	// #nosec G304 -- template path comes from the manifest
	tmpl, err := os.ReadFile(spec.Template)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "template", spec.Template)
	}

	prefix := spec.Prefix
	if prefix == "" {
		prefix = DefaultVersionPrefix
	}

	return writeFile(spec.Output, []byte(version.Apply(prefix, string(tmpl))))
}

// WritePackageInit writes the init file of the module listing every generated task.
func (g *Generator) WritePackageInit(moduleDir, name string, pkg domain.PackageInit, tasks []string) error {
	content, err := RenderPackageInit(name, pkg, tasks)
	if err != nil {
		return err
	}

	fileName := pkg.FileName
	if fileName == "" {
		fileName = DefaultInitFile
	}

	return writeFile(filepath.Join(moduleDir, fileName), []byte(content))
}

// RenderPackageInit returns the init file content without writing it.
func RenderPackageInit(name string, pkg domain.PackageInit, tasks []string) (string, error) {
	var buf strings.Builder
	if err := initTemplate.Execute(&buf, initData{Name: name, Tasks: tasks, Imports: pkg.Imports}); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "module", name)
	}
	return buf.String(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write generated file"), "path", path)
	}
	return nil
}
