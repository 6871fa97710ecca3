package user

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
)

type Servicer interface {
	Register(ctx context.Context, name, password string) (int64, error)
	Login(ctx context.Context, name, password string) error
	ChangePassword(ctx context.Context, name, oldPassword, newPassword string) error
	ChangeUsername(ctx context.Context, name, password, newName string) error
	Profile(ctx context.Context, name string) (Profile, error)
}

type Service struct {
	repo      Repository
	encryptor Encryptor
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, encryptor Encryptor, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		encryptor: encryptor,
		validator: validator,
		log:       log.With("component", "user_service"),
	}
}

// Register stores a new user with an encrypted password.
func (s *Service) Register(ctx context.Context, name, password string) (int64, error) {
	if err := s.validator.ValidateRegister(name, password); err != nil {
		s.log.Debug("validation failed", "name", name, "error", err)
		return 0, errs.Wrap(errs.ErrInvalidInput, "register", err)
	}

	encrypted, err := s.encryptor.Encrypt(password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, name, encrypted)
	if err != nil {
		return 0, err
	}

	s.log.Info("user registered", "id", id)
	return id, nil
}

// Login checks name and password. Unknown names and wrong passwords are
// reported the same way.
func (s *Service) Login(ctx context.Context, name, password string) error {
	if name == "" || password == "" {
		return errs.Wrap(errs.ErrInvalidCredentials, "login", nil)
	}

	encrypted, err := s.encryptor.Encrypt(password)
	if err != nil {
		return err
	}

	ok, err := s.repo.Authenticate(ctx, name, encrypted)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug("login rejected", "name", name)
		return errs.Wrap(errs.ErrInvalidCredentials, "login", nil)
	}

	return nil
}

// ChangePassword replaces the password of name after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, name, oldPassword, newPassword string) error {
	if err := s.validator.ValidatePassword(newPassword); err != nil {
		return errs.Wrap(errs.ErrInvalidInput, "change password", err)
	}

	if err := s.verify(ctx, "change password", name, oldPassword); err != nil {
		return err
	}

	encrypted, err := s.encryptor.Encrypt(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.ChangePassword(ctx, name, encrypted); err != nil {
		return err
	}

	s.log.Info("password changed", "name", name)
	return nil
}

// ChangeUsername renames the user after checking the password.
func (s *Service) ChangeUsername(ctx context.Context, name, password, newName string) error {
	if err := s.validator.ValidateName(newName); err != nil {
		return errs.Wrap(errs.ErrInvalidInput, "change username", err)
	}

	if err := s.verify(ctx, "change username", name, password); err != nil {
		return err
	}

	if err := s.repo.ChangeUsername(ctx, name, newName); err != nil {
		return err
	}

	s.log.Info("username changed", "from", name, "to", newName)
	return nil
}

func (s *Service) Profile(ctx context.Context, name string) (Profile, error) {
	u, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

// verify decrypts the stored password and compares it with password.
func (s *Service) verify(ctx context.Context, op, name, password string) error {
	u, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.Wrap(errs.ErrInvalidCredentials, op, nil)
	}
	if err != nil {
		return err
	}

	ok, err := s.encryptor.Matches(u.EncryptedPassword, password)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Wrap(errs.ErrInvalidCredentials, op, nil)
	}

	return nil
}
