package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func TestNameCache_RecordIsIdempotent(t *testing.T) {
	c := domain.NewNameCache(nil)

	assert.True(t, c.Record("foo", "foo.cpython-36m"))
	assert.False(t, c.Record("foo", "foo.cpython-36m"))
	assert.Equal(t, map[string]string{"foo": "foo.cpython-36m"}, c.Snapshot())
}

func TestNameCache_Translate(t *testing.T) {
	c := domain.NewNameCache(map[string]string{"casacore": "casacore.cpython-36m"})

	got := c.Translate([]string{"casacore", "lapack"})

	assert.Equal(t, []string{"casacore.cpython-36m", "lapack"}, got)
	assert.Nil(t, c.Translate(nil))
}

func TestSearchPathSet_RecordMovesToFront(t *testing.T) {
	s := domain.NewSearchPathSet([]string{"a", "b", "a", ""})
	assert.Equal(t, []string{"a", "b"}, s.Dirs())

	assert.True(t, s.Record("c"))
	assert.Equal(t, []string{"c", "a", "b"}, s.Dirs())

	assert.True(t, s.Record("b"))
	assert.Equal(t, []string{"b", "c", "a"}, s.Dirs())

	assert.False(t, s.Record("b"))
	assert.Equal(t, 3, s.Len())
}

func TestMangledLibraryName(t *testing.T) {
	tests := []struct {
		file    string
		key     string
		mangled string
		ok      bool
	}{
		{"build/lib/libfoo.so", "foo", "foo", true},
		{"libfoo.cpython-36m-x86_64-linux-gnu.so", "foo", "foo.cpython-36m-x86_64-linux-gnu", true},
		{"out/libbar.dylib", "bar", "bar", true},
		{"lib.so", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			key, mangled, ok := domain.MangledLibraryName(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.mangled, mangled)
		})
	}
}

func TestMergeSearchDirs(t *testing.T) {
	got := domain.MergeSearchDirs([]string{"/cfg"}, []string{"/caller", "/cfg"}, []string{"", "/found"})
	assert.Equal(t, []string{"/cfg", "/caller", "/found"}, got)
}
