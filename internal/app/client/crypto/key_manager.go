package crypto

import (
	"errors"
	"sync"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
)

// KeyManager owns the process-wide credential key. The key is loaded or
// created on first use and then served from memory.
type KeyManager struct {
	store KeyStore
	log   *slog.Logger
	key   Key
	mu    sync.Mutex
}

// NewKeyManager creates a manager backed by store.
func NewKeyManager(store KeyStore, log *slog.Logger) *KeyManager {
	return &KeyManager{
		store: store,
		log:   log.With("component", "key_manager"),
	}
}

// GetOrCreateKey returns the persisted key, generating and persisting one if
// none exists. A key that is already persisted always wins over a fresh one.
//
// The returned slice is borrowed: callers must not modify or retain it.
func (m *KeyManager) GetOrCreateKey() (Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return m.key, nil
	}

	key, err := m.store.Load()
	switch {
	case err == nil:
		m.log.Debug("encryption key loaded")
	case errors.Is(err, ErrKeyNotFound):
		key, err = m.create()
		if err != nil {
			return nil, err
		}
	default:
		m.log.Error("failed to load encryption key", "error", err)
		return nil, errs.Wrap(errs.ErrKeyStorage, "load key", err)
	}

	m.key = key
	return m.key, nil
}

func (m *KeyManager) create() (Key, error) {
	key, err := GenerateRandomBytes(KeySize)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKeyStorage, "generate key", err)
	}

	err = m.store.Create(key)
	if errors.Is(err, ErrKeyExists) {
		// Someone persisted a key between Load and Create.
		ClearMemory(key)

		existing, err := m.store.Load()
		if err != nil {
			m.log.Error("failed to reload existing encryption key", "error", err)
			return nil, errs.Wrap(errs.ErrKeyStorage, "reload key", err)
		}
		return existing, nil
	}
	if err != nil {
		ClearMemory(key)
		m.log.Error("failed to persist encryption key", "error", err)
		return nil, errs.Wrap(errs.ErrKeyStorage, "persist key", err)
	}

	m.log.Info("encryption key created")
	return key, nil
}

// Fingerprint returns the SHA-256 hex of the key.
func (m *KeyManager) Fingerprint() (string, error) {
	key, err := m.GetOrCreateKey()
	if err != nil {
		return "", err
	}
	return HashKey(key), nil
}

// Forget wipes the cached key from memory. The next GetOrCreateKey reloads it.
func (m *KeyManager) Forget() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		ClearMemory(m.key)
		m.key = nil
	}
}
