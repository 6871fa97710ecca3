package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKeyStore_CreateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", ".secret.key")

	store, err := NewFileKeyStore(path, "")
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	key, err := GenerateRandomBytes(KeySize)
	require.NoError(t, err)
	require.NoError(t, store.Create(key))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyFilePermissions), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Key(key), loaded)
}

func TestFileKeyStore_CreateNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".secret.key")
	store, err := NewFileKeyStore(path, "")
	require.NoError(t, err)

	first, _ := GenerateRandomBytes(KeySize)
	second, _ := GenerateRandomBytes(KeySize)

	require.NoError(t, store.Create(first))
	assert.ErrorIs(t, store.Create(second), ErrKeyExists)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Key(first), loaded)
}

func TestFileKeyStore_Passphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".secret.key")

	store, err := NewFileKeyStore(path, "correct horse")
	require.NoError(t, err)

	key, _ := GenerateRandomBytes(KeySize)
	require.NoError(t, store.Create(key))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Key(key), loaded)

	wrong, _ := NewFileKeyStore(path, "battery staple")
	_, err = wrong.Load()
	assert.Error(t, err)

	missing, _ := NewFileKeyStore(path, "")
	_, err = missing.Load()
	assert.Error(t, err)
}

func TestFileKeyStore_RejectsTamperedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".secret.key")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, _ := NewFileKeyStore(path, "")
	_, err := store.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestFileKeyStore_RejectsWrongKeySize(t *testing.T) {
	store, _ := NewFileKeyStore(filepath.Join(t.TempDir(), ".secret.key"), "")
	assert.Error(t, store.Create(Key("short")))
}
