package user

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name string, encryptedPassword []byte) (int64, error) {
	args := m.Called(ctx, name, encryptedPassword)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Authenticate(ctx context.Context, name string, encryptedPassword []byte) (bool, error) {
	args := m.Called(ctx, name, encryptedPassword)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ChangePassword(ctx context.Context, name string, encryptedPassword []byte) error {
	args := m.Called(ctx, name, encryptedPassword)
	return args.Error(0)
}

func (m *MockRepository) ChangeUsername(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockRepository) FindByName(ctx context.Context, name string) (User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(User), args.Error(1)
}

// reverseEncryptor is a reversible stand-in for the credential cipher.
type reverseEncryptor struct {
	err error
}

func (e reverseEncryptor) Encrypt(plaintext string) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	b := []byte(plaintext)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b, nil
}

func (e reverseEncryptor) Matches(ciphertext []byte, plaintext string) (bool, error) {
	if e.err != nil {
		return false, e.err
	}
	enc, _ := e.Encrypt(plaintext)
	return string(enc) == string(ciphertext), nil
}

func newTestService(repo Repository) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, reverseEncryptor{}, NewCredentialValidator(), log)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, "alice", []byte("terces")).Return(int64(1), nil)

	id, err := service.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, "alice", mock.Anything).
		Return(int64(0), errs.Wrap(errs.ErrUniquenessViolation, "create user", nil))

	_, err := service.Register(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, errs.ErrUniquenessViolation)
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"empty name", "", "secret"},
		{"short password", "alice", "123"},
		{"bad characters", "al ice", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Register(context.Background(), tt.user, tt.password)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Register_KeyUnavailable(t *testing.T) {
	mockRepo := new(MockRepository)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	keyErr := errs.Wrap(errs.ErrKeyStorage, "load key", errors.New("permission denied"))
	service := NewService(mockRepo, reverseEncryptor{err: keyErr}, NewCredentialValidator(), log)

	_, err := service.Register(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, errs.ErrKeyStorage)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		setupMock func(m *MockRepository)
		wantErr   error
	}{
		{
			name:     "correct password",
			password: "secret",
			setupMock: func(m *MockRepository) {
				m.On("Authenticate", mock.Anything, "alice", []byte("terces")).Return(true, nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMock: func(m *MockRepository) {
				m.On("Authenticate", mock.Anything, "alice", []byte("epon")).Return(false, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "storage failure",
			password: "secret",
			setupMock: func(m *MockRepository) {
				m.On("Authenticate", mock.Anything, "alice", mock.Anything).
					Return(false, errs.Wrap(errs.ErrStorage, "authenticate", errors.New("disk I/O error")))
			},
			wantErr: errs.ErrStorage,
		},
		{
			name:      "empty password",
			password:  "",
			setupMock: func(m *MockRepository) {},
			wantErr:   errs.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setupMock(mockRepo)
			service := newTestService(mockRepo)

			err := service.Login(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	stored := User{ID: 1, Name: "alice", EncryptedPassword: []byte("terces")}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		mockRepo.On("FindByName", mock.Anything, "alice").Return(stored, nil)
		mockRepo.On("ChangePassword", mock.Anything, "alice", []byte("drowssap")).Return(nil)

		err := service.ChangePassword(context.Background(), "alice", "secret", "password")
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		mockRepo.On("FindByName", mock.Anything, "alice").Return(stored, nil)

		err := service.ChangePassword(context.Background(), "alice", "guess", "password")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		mockRepo.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		mockRepo.On("FindByName", mock.Anything, "bob").Return(User{}, errs.Wrap(errs.ErrNotFound, "find user", nil))

		err := service.ChangePassword(context.Background(), "bob", "secret", "password")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("new password too short", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		err := service.ChangePassword(context.Background(), "alice", "secret", "abc")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})
}

func TestService_ChangeUsername(t *testing.T) {
	stored := User{ID: 1, Name: "alice", EncryptedPassword: []byte("terces")}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		mockRepo.On("FindByName", mock.Anything, "alice").Return(stored, nil)
		mockRepo.On("ChangeUsername", mock.Anything, "alice", "alicia").Return(nil)

		require.NoError(t, service.ChangeUsername(context.Background(), "alice", "secret", "alicia"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("name taken", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		mockRepo.On("FindByName", mock.Anything, "alice").Return(stored, nil)
		mockRepo.On("ChangeUsername", mock.Anything, "alice", "bob").
			Return(errs.Wrap(errs.ErrUniquenessViolation, "change username", nil))

		err := service.ChangeUsername(context.Background(), "alice", "secret", "bob")
		assert.ErrorIs(t, err, errs.ErrUniquenessViolation)
	})
}

func TestService_Profile(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindByName", mock.Anything, "alice").
		Return(User{ID: 7, Name: "alice", EncryptedPassword: []byte("x")}, nil)

	p, err := service.Profile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, Profile{ID: 7, Name: "alice"}, p)
}
