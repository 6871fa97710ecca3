package user

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	MinNameLen     = 3
	MaxNameLen     = 32
	MinPasswordLen = 4
	MaxPasswordLen = 64
)

// Validator checks user input before it reaches the store.
type Validator interface {
	ValidateRegister(name, password string) error
	ValidateName(name string) error
	ValidatePassword(password string) error
}

type CredentialValidator struct {
	requireSpecialChar bool
	requireDigit       bool
	requireUpper       bool
	requireLower       bool
}

type ValidatorOption func(*CredentialValidator)

// WithStrongPasswords requires lower, upper, digit and special characters.
func WithStrongPasswords() ValidatorOption {
	return func(v *CredentialValidator) {
		v.requireSpecialChar = true
		v.requireDigit = true
		v.requireUpper = true
		v.requireLower = true
	}
}

// NewCredentialValidator creates a validator. Only length limits apply unless
// options say otherwise.
func NewCredentialValidator(opts ...ValidatorOption) *CredentialValidator {
	v := &CredentialValidator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *CredentialValidator) ValidateRegister(name, password string) error {
	if err := v.ValidateName(name); err != nil {
		return fmt.Errorf("name validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *CredentialValidator) ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLen {
		return fmt.Errorf("name must be at least %d characters", MinNameLen)
	}

	if n > MaxNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxNameLen)
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("name can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

func (v *CredentialValidator) ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	if n > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLen)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if v.requireUpper && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if v.requireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	if v.requireSpecialChar && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
