package crypto

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of the managed key: AES-256.
	KeySize = 32

	keyFileVersion     = 1
	keyFilePermissions = 0600
	keyDirPermissions  = 0700

	algorithmAES256    = "AES-256"
	protectionNone     = "none"
	protectionArgon2id = "argon2id"

	argon2Time       = 1
	argon2Memory     = 64 * 1024 // 64 MB
	argon2Threads    = 4
	argon2SaltLength = 16
)

var (
	// ErrKeyNotFound is returned by KeyStore.Load when no key was persisted yet.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyExists is returned by KeyStore.Create when a key is already persisted.
	ErrKeyExists = errors.New("key already exists")
)

// Key is the symmetric key protecting stored credentials.
type Key []byte

// KeyStore persists a single key outside of the record store.
type KeyStore interface {
	Load() (Key, error)
	Create(key Key) error
}

// KeyFileHeader holds the metadata written next to the key.
type KeyFileHeader struct {
	Version    int       `json:"version"`
	Algorithm  string    `json:"algorithm"`
	Protection string    `json:"protection"`
	Salt       string    `json:"salt,omitempty"` // hex, argon2id only
	CreatedAt  time.Time `json:"created_at"`
	KeyHash    string    `json:"key_hash"` // SHA-256 of the plain key
}

type keyFile struct {
	Header KeyFileHeader `json:"header"`
	Data   string        `json:"data"` // hex
}

// FileKeyStore keeps the key in a 0600 JSON file. When a passphrase is set the
// key is sealed with an Argon2id-derived key-encryption key.
type FileKeyStore struct {
	path       string
	passphrase string
}

// NewFileKeyStore creates a store for the key file at path.
func NewFileKeyStore(path, passphrase string) (*FileKeyStore, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve key path: %w", err)
	}

	return &FileKeyStore{
		path:       absPath,
		passphrase: passphrase,
	}, nil
}

// Path returns the absolute key file path.
func (s *FileKeyStore) Path() string {
	return s.path
}

// Load reads and verifies the key file.
func (s *FileKeyStore) Load() (Key, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	var container keyFile
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}

	header := container.Header
	if header.Version != keyFileVersion {
		return nil, fmt.Errorf("unsupported key file version %d", header.Version)
	}

	raw, err := hex.DecodeString(container.Data)
	if err != nil {
		return nil, fmt.Errorf("decode key data: %w", err)
	}

	var key []byte
	switch header.Protection {
	case protectionNone:
		key = raw
	case protectionArgon2id:
		if s.passphrase == "" {
			return nil, fmt.Errorf("key file is passphrase protected")
		}

		salt, err := hex.DecodeString(header.Salt)
		if err != nil {
			return nil, fmt.Errorf("decode salt: %w", err)
		}

		kek := deriveKeyEncryptionKey(s.passphrase, salt)
		defer ClearMemory(kek)

		key, err = openWithKey(kek, raw)
		if err != nil {
			return nil, fmt.Errorf("wrong passphrase or corrupted key file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported key protection: %s", header.Protection)
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("key has %d bytes, want %d", len(key), KeySize)
	}
	if HashKey(key) != header.KeyHash {
		return nil, fmt.Errorf("key hash mismatch")
	}

	return key, nil
}

// Create writes key to a new file. An existing file is never overwritten.
func (s *FileKeyStore) Create(key Key) error {
	if len(key) != KeySize {
		return fmt.Errorf("key has %d bytes, want %d", len(key), KeySize)
	}

	header := KeyFileHeader{
		Version:    keyFileVersion,
		Algorithm:  algorithmAES256,
		Protection: protectionNone,
		CreatedAt:  time.Now().UTC(),
		KeyHash:    HashKey(key),
	}

	payload := []byte(key)
	if s.passphrase != "" {
		salt, err := GenerateRandomBytes(argon2SaltLength)
		if err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}

		kek := deriveKeyEncryptionKey(s.passphrase, salt)
		defer ClearMemory(kek)

		payload, err = sealWithKey(kek, key)
		if err != nil {
			return fmt.Errorf("seal key: %w", err)
		}

		header.Protection = protectionArgon2id
		header.Salt = hex.EncodeToString(salt)
	}

	data, err := json.MarshalIndent(keyFile{
		Header: header,
		Data:   hex.EncodeToString(payload),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), keyDirPermissions); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFilePermissions)
	if errors.Is(err, fs.ErrExist) {
		return ErrKeyExists
	}
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(s.path)
		return fmt.Errorf("write key file: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(s.path)
		return fmt.Errorf("sync key file: %w", err)
	}

	return f.Close()
}

func deriveKeyEncryptionKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory, argon2Threads, KeySize)
}
