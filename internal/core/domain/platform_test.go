package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func TestPlatform_WordSize(t *testing.T) {
	tests := []struct {
		arch string
		flag string
		ok   bool
	}{
		{"amd64", "-m64", true},
		{"arm64", "-m64", true},
		{"386", "-m32", true},
		{"wasm", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.arch, func(t *testing.T) {
			flag, ok := domain.NewPlatform(domain.OSLinux, tt.arch).WordSizeFlag()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.flag, flag)
		})
	}
}

func TestPlatform_Bundling(t *testing.T) {
	darwin := domain.NewPlatform(domain.OSDarwin, "arm64")
	linux := domain.NewPlatform(domain.OSLinux, "amd64")

	assert.True(t, darwin.Bundling())
	assert.Equal(t, ".dylib", darwin.SharedSuffix())
	assert.Equal(t, []string{"-bundle", "-undefined", "dynamic_lookup"}, darwin.SharedObjectFlags())
	assert.Equal(t, []string{"-dynamiclib", "-undefined", "dynamic_lookup"}, darwin.DynamicLibraryFlags())
	assert.Equal(t, "-Wl,-rpath,@loader_path/../lib", darwin.RPathFlag("../lib"))

	assert.False(t, linux.Bundling())
	assert.Equal(t, ".so", linux.SharedSuffix())
	assert.Equal(t, []string{"-shared"}, linux.DynamicLibraryFlags())
	assert.Equal(t, "-Wl,-rpath,$ORIGIN/../lib", linux.RPathFlag("../lib"))
}

func TestPlatformCompileFlags_OpenMPWithheld(t *testing.T) {
	assert.Equal(t, []string{"-fcx-fortran-rules"}, domain.PlatformCompileFlags(domain.OSLinux))
	assert.NotContains(t, domain.PlatformCompileFlags(domain.OSLinux), "-fopenmp")
	assert.Empty(t, domain.PlatformCompileFlags(domain.OSDarwin))
}

func TestUnsupportedPlatformError(t *testing.T) {
	err := domain.UnsupportedPlatformError(domain.NewPlatform("windows", "amd64"))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedPlatform))
	assert.Contains(t, err.Error(), "windows/amd64")
}
