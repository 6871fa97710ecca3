package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, name string, encryptedPassword []byte) (int64, error)
	Authenticate(ctx context.Context, name string, encryptedPassword []byte) (bool, error)
	ChangePassword(ctx context.Context, name string, encryptedPassword []byte) error
	ChangeUsername(ctx context.Context, oldName, newName string) error
	FindByName(ctx context.Context, name string) (User, error)
}

// Encryptor turns plaintext passwords into stored credentials and back.
type Encryptor interface {
	Encrypt(plaintext string) ([]byte, error)
	Matches(ciphertext []byte, plaintext string) (bool, error)
}
