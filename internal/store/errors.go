package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to commit or
	// an operation inside it fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrLanguageNotFound indicates the requested language does not exist.
	ErrLanguageNotFound = fmt.Errorf("%w: language", ErrNotFound)

	// ErrUserLanguageNotFound indicates the requested user-language
	// association does not exist.
	ErrUserLanguageNotFound = fmt.Errorf("%w: user language", ErrNotFound)

	// ErrEmailExists indicates a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrUserLanguageExists indicates the (user, language) pair is already
	// associated.
	ErrUserLanguageExists = fmt.Errorf("%w: user language", ErrDuplicate)

	// ErrNativeLanguageExists indicates the user already has a native
	// association; the schema allows at most one per user.
	ErrNativeLanguageExists = fmt.Errorf("%w: native language", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
