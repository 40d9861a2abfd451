package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccdrive/internal/adapters/config"
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoadToolchain_FlattensInOrder(t *testing.T) {
	path := writeFile(t, "toolchain.yaml", `
build:
  compiler:
    cc: gcc
    cxx: g++
  flags:
    compile.cxx: [-O2, -DCASACORE]
    link:
      base: ["-L/opt/casa/lib", "", -lcfitsio]
      openmp: -fopenmp
build.python.numpy_dir: /numpy/include
option.grpc: 0
build.compiler.ccache: ~
`)
	loader, _ := newLoader(t)

	tc, err := loader.LoadToolchain(path)
	require.NoError(t, err)

	keys := make([]string, 0)
	for _, e := range tc.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{
		"build.compiler.cc",
		"build.compiler.cxx",
		"build.flags.compile.cxx",
		"build.flags.link.base",
		"build.flags.link.openmp",
		"build.python.numpy_dir",
		"option.grpc",
		"build.compiler.ccache",
	}, keys)

	assert.Equal(t, "gcc", tc.String(domain.KeyCC))
	assert.Equal(t, []string{"-I/numpy/include", "-O2", "-DCASACORE"}, tc.CompileFlags())
	assert.Equal(t, []string{"-L/opt/casa/lib", "-lcfitsio", "-fopenmp"}, tc.LinkFlags())
	assert.Equal(t, []string{"/opt/casa/lib"}, tc.LinkDirs())
	assert.False(t, tc.OptionEnabled(domain.KeyOptionGRPC))
	assert.Empty(t, tc.CCache())
}

func TestLoadToolchain_Empty(t *testing.T) {
	loader, _ := newLoader(t)

	tc, err := loader.LoadToolchain(writeFile(t, "toolchain.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, tc.Entries())
}

func TestLoadToolchain_Errors(t *testing.T) {
	loader, _ := newLoader(t)

	tests := []struct {
		name    string
		content string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "nested list",
			content: "build.flags.compile: [[-O2]]\n",
			wantIs:  domain.ErrInvalidToolchainValue,
		},
		{
			name:    "top level list",
			content: "- gcc\n",
			wantIs:  domain.ErrConfigParseFailed,
		},
		{
			name:    "bad yaml",
			content: "build: [\n",
			wantMsg: domain.ErrConfigParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadToolchain(writeFile(t, "toolchain.yaml", tt.content))
			require.Error(t, err)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLoadToolchain_MissingFile(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.LoadToolchain(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

const fullManifest = `
name: casatools
build_dir: out
sources: [src/*.cc, casacore/fits]
include_dirs: [include]
std: c++14
path_flags:
  - pattern: casacore/
    flags: [-DCASACORE_NOEXIT]
  - pattern: casacore/fits
    flags: [-Wno-deprecated]
platform_flags:
  linux: [-fcx-fortran-rules]
lex: [grammar/Expr.ll]
yacc: [grammar/Expr.yy]
version:
  script: scripts/gitrev
  args: [--short]
  template: src/version.cc.in
  output: generated/version.cc
  prefix: CASATOOLS
executable:
  name: wvrgcal
  libraries: [casacore, m]
  rpath: lib
  link_flags:
    linux: [-lgfortran]
  static_archives: [vendor/libsakura.a]
  vendored_fragments: [sakura]
closure:
  script: scripts/closure
xml_conversions:
  - source: xml/tool.xml
    dest: build/xml/tool.xml
task_xml: [xml/task.xml]
package:
  file_name: __init__.py
  imports: [casatools]
private_scripts: [scripts/run.sh]
private_modules: [modules/casa]
required_options: [option.boost]
`

func TestLoadManifest_Full(t *testing.T) {
	loader, _ := newLoader(t)

	m, err := loader.LoadManifest(writeFile(t, "ccdrive.yaml", fullManifest))
	require.NoError(t, err)

	assert.Equal(t, "casatools", m.Name)
	assert.Equal(t, "c++14", m.Standard())
	assert.Equal(t, []string{"-fPIC"}, m.BaseFlags)
	assert.Equal(t, []string{"src/*.cc", "casacore/fits"}, m.Sources)
	assert.Equal(t, 2, m.PathFlags.Len())
	assert.Equal(t, []string{"-DCASACORE_NOEXIT", "-Wno-deprecated"}, m.PathFlags.Match("casacore/fits/FITS.cc"))
	assert.Equal(t, []string{"-fcx-fortran-rules"}, m.PlatformCompileFlags(domain.OSLinux))

	require.NotNil(t, m.Version)
	assert.Equal(t, "CASATOOLS", m.Version.Prefix)
	assert.Equal(t, []string{"--short"}, m.Version.Args)

	require.NotNil(t, m.Executable)
	assert.Equal(t, "wvrgcal", m.Executable.Name)
	assert.Equal(t, []string{"-lgfortran"}, m.Executable.LinkFlags[domain.OSLinux])
	assert.Equal(t, []string{"vendor/libsakura.a"}, m.Executable.StaticArchives)

	require.NotNil(t, m.Closure)
	assert.Equal(t, "scripts/closure", m.Closure.Script)
	assert.Equal(t, []domain.XMLConversion{{Source: "xml/tool.xml", Dest: "build/xml/tool.xml"}}, m.XMLConversions)
	assert.Equal(t, "__init__.py", m.Package.FileName)
	assert.Equal(t, []string{"option.boost"}, m.RequiredOptions)
	assert.Equal(t, filepath.Join("out", "lib", "casatools"), m.Layout().ModuleDir)
}

func TestLoadManifest_ExplicitEmptyBaseFlags(t *testing.T) {
	loader, _ := newLoader(t)

	m, err := loader.LoadManifest(writeFile(t, "ccdrive.yaml", "name: x\nbase_flags: []\n"))
	require.NoError(t, err)
	assert.Empty(t, m.BaseFlags)
	assert.NotNil(t, m.BaseFlags)
}

func TestLoadManifest_WarnsOnUnknownPlatform(t *testing.T) {
	loader, log := newLoader(t)
	log.EXPECT().Warn("platform_flags entry for windows is never applied").Times(1)

	_, err := loader.LoadManifest(writeFile(t, "ccdrive.yaml", "name: x\nplatform_flags:\n  windows: [/O2]\n"))
	require.NoError(t, err)
}

func TestLoadManifest_Invalid(t *testing.T) {
	loader, _ := newLoader(t)

	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "sources: [a.cc]\n"},
		{"name with separator", "name: a/b\n"},
		{"pattern missing", "name: x\npath_flags:\n  - flags: [-DX]\n"},
		{"xml without dest", "name: x\nxml_conversions:\n  - source: a.xml\n"},
		{"version without template", "name: x\nversion:\n  script: rev\n  output: v.cc\n"},
		{"executable without name", "name: x\nexecutable:\n  libraries: [m]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadManifest(writeFile(t, "ccdrive.yaml", tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidManifest)
		})
	}
}

func TestLoadManifest_ReadAndParseErrors(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())

	_, err = loader.LoadManifest(writeFile(t, "ccdrive.yaml", "name: [\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}
