package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneytracker/internal/domain/errs"
)

func testKey(t *testing.T) Key {
	t.Helper()
	key, err := GenerateRandomBytes(KeySize)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestCredential_RoundTrip(t *testing.T) {
	key := testKey(t)

	for _, plaintext := range []string{"", "1234", "pässwörd", "a much longer password with spaces"} {
		ciphertext, err := EncryptCredential(plaintext, key)
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		decrypted, err := DecryptCredential(ciphertext, key)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}
		if decrypted != plaintext {
			t.Errorf("got %q, want %q", decrypted, plaintext)
		}
	}
}

func TestCredential_Deterministic(t *testing.T) {
	key := testKey(t)

	a, err := EncryptCredential("secret", key)
	require.NoError(t, err)
	b, err := EncryptCredential("secret", key)
	require.NoError(t, err)
	c, err := EncryptCredential("Secret", key)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCredential_WrongKey(t *testing.T) {
	ciphertext, err := EncryptCredential("secret", testKey(t))
	require.NoError(t, err)

	_, err = DecryptCredential(ciphertext, testKey(t))
	assert.ErrorIs(t, err, errs.ErrDecryption)
}

func TestCredential_Malformed(t *testing.T) {
	key := testKey(t)
	valid, err := EncryptCredential("secret", key)
	require.NoError(t, err)

	tampered := bytes.Clone(valid)
	tampered[len(tampered)-1] ^= 0xff

	badVersion := bytes.Clone(valid)
	badVersion[0] = 9

	tests := []struct {
		name       string
		ciphertext []byte
	}{
		{"empty", nil},
		{"too short", valid[:10]},
		{"tampered tag", tampered},
		{"unknown version", badVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptCredential(tt.ciphertext, key)
			assert.ErrorIs(t, err, errs.ErrDecryption)
		})
	}
}

func TestCredential_BadKeySize(t *testing.T) {
	_, err := EncryptCredential("secret", Key("short"))
	assert.ErrorIs(t, err, errs.ErrKeyStorage)

	_, err = DecryptCredential(make([]byte, 64), Key("short"))
	assert.ErrorIs(t, err, errs.ErrDecryption)
}

type staticKeys struct{ key Key }

func (s staticKeys) GetOrCreateKey() (Key, error) { return s.key, nil }

func TestCredentialEncryptor_Matches(t *testing.T) {
	enc := NewCredentialEncryptor(staticKeys{key: testKey(t)})

	stored, err := enc.Encrypt("hunter2")
	require.NoError(t, err)

	ok, err := enc.Matches(stored, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = enc.Matches(stored, "hunter3")
	require.NoError(t, err)
	assert.False(t, ok)

	plain, err := enc.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}
