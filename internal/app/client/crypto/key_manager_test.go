package crypto

import (
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// racingStore reports ErrKeyExists on Create as if another process won the race.
type racingStore struct {
	winner Key
	loads  int
}

func (s *racingStore) Load() (Key, error) {
	s.loads++
	if s.loads == 1 {
		return nil, ErrKeyNotFound
	}
	return s.winner, nil
}

func (s *racingStore) Create(Key) error {
	return ErrKeyExists
}

type brokenStore struct{}

func (brokenStore) Load() (Key, error) { return nil, errors.New("permission denied") }
func (brokenStore) Create(Key) error   { return errors.New("permission denied") }

func TestKeyManager_GetOrCreateKey_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".secret.key")
	store, err := NewFileKeyStore(path, "")
	require.NoError(t, err)

	first, err := NewKeyManager(store, discardLogger()).GetOrCreateKey()
	require.NoError(t, err)
	assert.Len(t, first, KeySize)

	// A fresh manager over the same file sees the same key.
	second, err := NewKeyManager(store, discardLogger()).GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestKeyManager_ConcurrentCallers(t *testing.T) {
	store, err := NewFileKeyStore(filepath.Join(t.TempDir(), ".secret.key"), "")
	require.NoError(t, err)
	mgr := NewKeyManager(store, discardLogger())

	const workers = 8
	keys := make([]Key, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := mgr.GetOrCreateKey()
			assert.NoError(t, err)
			keys[i] = append(Key(nil), key...)
		}(i)
	}
	wg.Wait()

	for _, key := range keys[1:] {
		assert.Equal(t, keys[0], key)
	}
}

func TestKeyManager_ExistingKeyWins(t *testing.T) {
	winner, _ := GenerateRandomBytes(KeySize)
	store := &racingStore{winner: winner}

	key, err := NewKeyManager(store, discardLogger()).GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, Key(winner), key)
}

func TestKeyManager_StorageFailure(t *testing.T) {
	_, err := NewKeyManager(brokenStore{}, discardLogger()).GetOrCreateKey()
	assert.ErrorIs(t, err, errs.ErrKeyStorage)
}

func TestKeyManager_FingerprintAndForget(t *testing.T) {
	store, _ := NewFileKeyStore(filepath.Join(t.TempDir(), ".secret.key"), "")
	mgr := NewKeyManager(store, discardLogger())

	fp, err := mgr.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp, 64)

	mgr.Forget()

	again, err := mgr.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}
