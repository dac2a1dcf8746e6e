package cursor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissingFileReturnsDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "last-reservation.txt"))

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, DefaultValue, value)
}

func TestFileStore_ReadEmptyFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-reservation.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	store := NewFileStore(path)

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, DefaultValue, value)
}

func TestFileStore_WriteThenRead(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "last-reservation.txt"))

	require.NoError(t, store.Write("4000000123"))

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "4000000123", value)
}

func TestFileStore_WriteOverwritesPreviousValue(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "last-reservation.txt"))

	require.NoError(t, store.Write("100"))
	require.NoError(t, store.Write("101"))

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "101", value)
}

func TestFileStore_SurvivesNewStoreInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-reservation.txt")

	require.NoError(t, NewFileStore(path).Write("2024-05-01T10:00:00Z"))

	value, err := NewFileStore(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:00:00Z", value)
}
