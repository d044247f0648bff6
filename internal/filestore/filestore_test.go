package filestore

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewWithFs(fs, slog.New(slog.DiscardHandler)), fs
}

func TestSave(t *testing.T) {
	store, fs := newTestStore()

	path, err := store.Save("banners/hero.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "banners/hero.png", path)

	content, err := afero.ReadFile(fs, "banners/hero.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSave_NoSubdirectory(t *testing.T) {
	store, fs := newTestStore()

	path, err := store.Save("flat.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "flat.png", path)

	exists, err := afero.Exists(fs, "flat.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Save("banners/old.png", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.Delete("banners/old.png"))

	exists, err := store.Exists("banners/old.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete_MissingFile(t *testing.T) {
	store, _ := newTestStore()

	err := store.Delete("banners/never-existed.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete file")
}

func TestExists(t *testing.T) {
	store, _ := newTestStore()

	exists, err := store.Exists("banners/hero.png")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Save("banners/hero.png", strings.NewReader("data"))
	require.NoError(t, err)

	exists, err = store.Exists("banners/hero.png")
	require.NoError(t, err)
	assert.True(t, exists)
}
