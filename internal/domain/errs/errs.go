// Package errs defines the failure kinds shared by every layer of the tracker core.
//
// Lower layers translate their own errors into one of these kinds with Wrap, so
// callers can branch with errors.Is and the presentation layer can show Message.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrKeyStorage          = errors.New("key storage unavailable")
	ErrDecryption          = errors.New("decryption failed")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrNotFound            = errors.New("not found")
	ErrStorage             = errors.New("storage failure")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidInput        = errors.New("invalid input")
)

// DomainError carries a failure kind together with the operation that failed
// and the underlying cause.
type DomainError struct {
	Err   error
	Op    string
	Cause error
}

func (e *DomainError) Error() string {
	switch {
	case e.Op != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Err, e.Cause)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %v", e.Err, e.Cause)
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Wrap attaches kind and op to cause. A nil cause is allowed.
func Wrap(kind error, op string, cause error) error {
	return &DomainError{Err: kind, Op: op, Cause: cause}
}

// Kind returns the first known failure kind found in err's chain, or nil.
func Kind(err error) error {
	for _, kind := range []error{
		ErrInvalidCredentials,
		ErrInvalidInput,
		ErrUniquenessViolation,
		ErrNotFound,
		ErrDecryption,
		ErrKeyStorage,
		ErrStorage,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns a short human-readable description of err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	switch Kind(err) {
	case ErrInvalidCredentials:
		return "Invalid username or password"
	case ErrInvalidInput:
		var de *DomainError
		if errors.As(err, &de) && de.Cause != nil {
			return "Invalid input: " + de.Cause.Error()
		}
		return "Invalid input"
	case ErrUniquenessViolation:
		return "This name is already taken"
	case ErrNotFound:
		return "Nothing found to change"
	case ErrDecryption:
		return "Stored credentials could not be decrypted"
	case ErrKeyStorage:
		return "Encryption key is unavailable"
	case ErrStorage:
		return "Local database error, please try again"
	}
	return "Unexpected error"
}

// Code returns a stable machine-readable name for err's kind.
func Code(err error) string {
	switch Kind(err) {
	case ErrInvalidCredentials:
		return "invalid_credentials"
	case ErrInvalidInput:
		return "invalid_input"
	case ErrUniquenessViolation:
		return "uniqueness_violation"
	case ErrNotFound:
		return "not_found"
	case ErrDecryption:
		return "decryption_error"
	case ErrKeyStorage:
		return "key_storage_error"
	case ErrStorage:
		return "storage_error"
	}
	if err == nil {
		return ""
	}
	return "internal"
}
