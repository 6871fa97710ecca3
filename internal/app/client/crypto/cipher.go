package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"moneytracker/internal/domain/errs"
)

const (
	credentialVersion  byte = 1
	syntheticNonceSize      = 12
	gcmTagSize              = 16

	encInfo = "moneytracker/credential/enc/v1"
	macInfo = "moneytracker/credential/mac/v1"
)

// EncryptCredential encrypts plaintext deterministically: the same plaintext
// and key always give the same ciphertext, so stored values can be compared
// byte for byte.
//
// Layout: version(1) || nonce(12) || AES-256-GCM(plaintext), where nonce is
// the truncated HMAC-SHA256 of the plaintext under a derived key.
func EncryptCredential(plaintext string, key Key) ([]byte, error) {
	if len(key) != KeySize {
		return nil, errs.Wrap(errs.ErrKeyStorage, "encrypt credential",
			fmt.Errorf("key has %d bytes, want %d", len(key), KeySize))
	}

	encKey, macKey, err := deriveSubkeys(key)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKeyStorage, "encrypt credential", err)
	}
	defer ClearMemory(encKey)
	defer ClearMemory(macKey)

	gcm, err := newGCM(encKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt credential: %w", err)
	}

	nonce := syntheticNonce(macKey, []byte(plaintext))

	out := make([]byte, 0, 1+syntheticNonceSize+len(plaintext)+gcmTagSize)
	out = append(out, credentialVersion)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, []byte(plaintext), nil), nil
}

// DecryptCredential reverses EncryptCredential. Malformed input or a key
// mismatch yields errs.ErrDecryption.
func DecryptCredential(ciphertext []byte, key Key) (string, error) {
	const op = "decrypt credential"

	if len(key) != KeySize {
		return "", errs.Wrap(errs.ErrDecryption, op,
			fmt.Errorf("key has %d bytes, want %d", len(key), KeySize))
	}
	if len(ciphertext) < 1+syntheticNonceSize+gcmTagSize {
		return "", errs.Wrap(errs.ErrDecryption, op, fmt.Errorf("ciphertext too short"))
	}
	if ciphertext[0] != credentialVersion {
		return "", errs.Wrap(errs.ErrDecryption, op,
			fmt.Errorf("unsupported credential version %d", ciphertext[0]))
	}

	encKey, macKey, err := deriveSubkeys(key)
	if err != nil {
		return "", errs.Wrap(errs.ErrDecryption, op, err)
	}
	defer ClearMemory(encKey)
	defer ClearMemory(macKey)

	gcm, err := newGCM(encKey)
	if err != nil {
		return "", errs.Wrap(errs.ErrDecryption, op, err)
	}

	nonce := ciphertext[1 : 1+syntheticNonceSize]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[1+syntheticNonceSize:], nil)
	if err != nil {
		return "", errs.Wrap(errs.ErrDecryption, op, err)
	}

	if !hmac.Equal(nonce, syntheticNonce(macKey, plaintext)) {
		return "", errs.Wrap(errs.ErrDecryption, op, fmt.Errorf("synthetic nonce mismatch"))
	}

	return string(plaintext), nil
}

func deriveSubkeys(key Key) (encKey, macKey []byte, err error) {
	encKey = make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(encInfo)), encKey); err != nil {
		return nil, nil, fmt.Errorf("derive encryption key: %w", err)
	}

	macKey = make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(macInfo)), macKey); err != nil {
		ClearMemory(encKey)
		return nil, nil, fmt.Errorf("derive mac key: %w", err)
	}

	return encKey, macKey, nil
}

func syntheticNonce(macKey, plaintext []byte) []byte {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(plaintext)
	return mac.Sum(nil)[:syntheticNonceSize]
}

// KeyProvider hands out the managed key.
type KeyProvider interface {
	GetOrCreateKey() (Key, error)
}

// CredentialEncryptor encrypts credentials with the key of a KeyProvider.
// The key is borrowed for the duration of a single call.
type CredentialEncryptor struct {
	keys KeyProvider
}

// NewCredentialEncryptor creates an encryptor over keys.
func NewCredentialEncryptor(keys KeyProvider) *CredentialEncryptor {
	return &CredentialEncryptor{
		keys: keys,
	}
}

// Encrypt encrypts a plaintext password.
func (e *CredentialEncryptor) Encrypt(plaintext string) ([]byte, error) {
	key, err := e.keys.GetOrCreateKey()
	if err != nil {
		return nil, err
	}
	return EncryptCredential(plaintext, key)
}

// Decrypt decrypts a stored password.
func (e *CredentialEncryptor) Decrypt(ciphertext []byte) (string, error) {
	key, err := e.keys.GetOrCreateKey()
	if err != nil {
		return "", err
	}
	return DecryptCredential(ciphertext, key)
}

// Matches decrypts ciphertext and compares it with plaintext in constant time.
func (e *CredentialEncryptor) Matches(ciphertext []byte, plaintext string) (bool, error) {
	stored, err := e.Decrypt(ciphertext)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) == 1, nil
}
