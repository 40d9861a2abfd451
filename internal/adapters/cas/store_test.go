package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccdrive/internal/adapters/cas"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	store := cas.NewStore(t.TempDir())

	info := domain.ObjectInfo{
		Source:    "src/a.cc",
		Object:    "build/temp/src/a.o",
		InputHash: "abc",
		Timestamp: time.Now().Truncate(time.Second),
	}

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, store.Put(info))

		got, err := store.Get("build/temp/src/a.o")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, info.Timestamp.Equal(got.Timestamp))
		got.Timestamp = info.Timestamp
		assert.Equal(t, info, *got)
	})

	t.Run("equivalent paths share a record", func(t *testing.T) {
		got, err := store.Get("build/temp/./src/a.o")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "abc", got.InputHash)
	})

	t.Run("get missing", func(t *testing.T) {
		got, err := store.Get("missing.o")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	store := cas.NewStore(t.TempDir())
	require.NoError(t, store.Put(domain.ObjectInfo{Object: "b.o"}))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = os.WriteFile(filepath.Join(store.Dir(), entries[0].Name()), []byte("{ invalid json"), 0o600)
	require.NoError(t, err)

	_, err = store.Get("b.o")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore(root)
	require.NoError(t, store.Put(domain.ObjectInfo{Object: "c.o", InputHash: "1"}))

	require.NoError(t, store.Clear())
	assert.NoDirExists(t, filepath.Join(root, ".ccdrive", "objects"))

	got, err := store.Get("c.o")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Clear())
}
