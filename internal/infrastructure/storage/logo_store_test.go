package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/infrastructure/storage"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLogoStore(dir)
	require.NoError(t, err)

	name, err := store.Save("abc-123", ".png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "user_abc-123_logo.png", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSave_ReemplazaExtensionAnterior(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLogoStore(dir)
	require.NoError(t, err)

	_, err = store.Save("abc-123", ".png", []byte("viejo"))
	require.NoError(t, err)

	name, err := store.Save("abc-123", ".jpg", []byte("nuevo"))
	require.NoError(t, err)
	assert.Equal(t, "user_abc-123_logo.jpg", name)

	// El logo anterior no debe quedar huérfano.
	_, err = os.Stat(filepath.Join(dir, "user_abc-123_logo.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewLogoStore_CreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logos")
	_, err := storage.NewLogoStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
