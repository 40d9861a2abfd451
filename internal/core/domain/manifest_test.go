package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func TestManifest_Layout(t *testing.T) {
	m := &domain.Manifest{Name: "almatasks"}

	layout := m.Layout()

	assert.Equal(t, filepath.Join("build", "temp"), layout.TempDir)
	assert.Equal(t, filepath.Join("build", "lib", "almatasks"), layout.ModuleDir)
	assert.Equal(t, filepath.Join("build", "lib", "almatasks", "private", "bin"), layout.BinDir)
	assert.Equal(t, filepath.Join("build", "lib", "almatasks", "private", "lib"), layout.LibDir)
	assert.Equal(t, filepath.Join("build", "temp", "src", "wvrgcal.o"), m.ObjectPath("src/wvrgcal.cc"))
}

func TestManifest_RequiredKeys(t *testing.T) {
	m := &domain.Manifest{
		Sources: []string{"a.cc", "b.f90"},
		Lex:     []string{"x.ll"},
		TaskXML: []string{"xml/t.xml"},
	}

	assert.Equal(t,
		[]string{domain.KeyCC, domain.KeyCXX, domain.KeyFortran, domain.KeyFlex, domain.KeyXMLCasa},
		m.RequiredKeys(),
	)
}

func TestManifest_Validate(t *testing.T) {
	tc := domain.NewToolchainConfig([]domain.ToolchainEntry{
		{Key: domain.KeyCC, Values: []string{"gcc"}},
		{Key: domain.KeyCXX, Values: []string{"g++"}},
		{Key: domain.KeyOptionBoost, Values: []string{"0"}},
	})

	t.Run("missing key", func(t *testing.T) {
		m := &domain.Manifest{Sources: []string{"x.f"}}
		err := m.Validate(tc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
	})

	t.Run("disabled option", func(t *testing.T) {
		m := &domain.Manifest{RequiredOptions: []string{domain.KeyOptionBoost}}
		err := m.Validate(tc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrOptionDisabled))
	})

	t.Run("valid", func(t *testing.T) {
		m := &domain.Manifest{Sources: []string{"x.cc"}}
		require.NoError(t, m.Validate(tc))
	})
}

func TestManifest_PlatformFlagOverride(t *testing.T) {
	m := &domain.Manifest{
		PathFlags:     domain.NewPathFlagTable(domain.PathFlags{Pattern: "/code/", Flags: []string{"-DX"}}),
		PlatformFlags: map[string][]string{domain.OSDarwin: {"-DMAC"}},
	}

	assert.Equal(t, []string{"-DX", "-DMAC"}, m.FlagTable(domain.OSDarwin).Match("a/code/b.cc"))
	assert.Equal(t, []string{"-DX", "-fcx-fortran-rules"}, m.FlagTable(domain.OSLinux).Match("a/code/b.cc"))
}

func TestParseTargetKind(t *testing.T) {
	kind, err := domain.ParseTargetKind("exe")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetExecutable, kind)

	_, err = domain.ParseTargetKind("bogus")
	assert.True(t, errors.Is(err, domain.ErrUnknownTargetKind))

	assert.True(t, domain.IsLibraryName("out/libfoo.so"))
	assert.False(t, domain.IsLibraryName("out/foo.so"))
}

func TestCommand_String(t *testing.T) {
	cmd := domain.NewCommand("link", "g++", "", "-Wl,-rpath,$ORIGIN/../lib", "-o", "a b")

	assert.Equal(t, []string{"g++", "-Wl,-rpath,$ORIGIN/../lib", "-o", "a b"}, cmd.Args)
	assert.Equal(t, `g++ '-Wl,-rpath,$ORIGIN/../lib' -o 'a b'`, cmd.String())
	assert.Equal(t, "g++", cmd.Program())
}
