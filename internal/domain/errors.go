package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the business-rule taxonomy. Callers match these with
// errors.Is; the typed errors below carry the offending identifiers for
// logging and response shaping.
var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrLanguageNotFound is returned when a referenced language is not in the catalog.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrLanguageAlreadyAdded is returned when adding a language the user already has.
	ErrLanguageAlreadyAdded = errors.New("language already added to user")

	// ErrLanguageNotAdded is returned when promoting a language that was never
	// added to the user. A language must be added before it can become native.
	ErrLanguageNotAdded = errors.New("language not added to user")

	// ErrNativeLanguageCannotBeRemoved is returned when deleting the association
	// currently marked native. The caller must assign a new native language first.
	ErrNativeLanguageCannotBeRemoved = errors.New("native language cannot be removed")

	// ErrMultipleNativeLanguages is returned when the store rejects a second
	// native association for the same user.
	ErrMultipleNativeLanguages = errors.New("user already has a native language")

	// ErrInvalidCredentials is returned on any login failure: unknown email,
	// inactive account, or wrong password. The message is deliberately uniform
	// so callers cannot distinguish which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserNotFoundError reports which user was not found, by id or by email
// depending on how the lookup was made.
type UserNotFoundError struct {
	UserID int64
	Email  string
}

func (e *UserNotFoundError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("user with email %s not found", e.Email)
	}
	return fmt.Sprintf("user with ID %d not found", e.UserID)
}

// Is makes errors.Is(err, ErrUserNotFound) match.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

// LanguageNotFoundError reports which language id was not found in the catalog.
type LanguageNotFoundError struct {
	LanguageID int64
}

func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("language with ID %d not found", e.LanguageID)
}

func (e *LanguageNotFoundError) Is(target error) bool {
	return target == ErrLanguageNotFound
}

// LanguageAlreadyAddedError reports a duplicate user-language association.
type LanguageAlreadyAddedError struct {
	UserID     int64
	LanguageID int64
}

func (e *LanguageAlreadyAddedError) Error() string {
	return fmt.Sprintf("user %d already has language %d", e.UserID, e.LanguageID)
}

func (e *LanguageAlreadyAddedError) Is(target error) bool {
	return target == ErrLanguageAlreadyAdded
}

// LanguageNotAddedError reports a promotion attempted before the association exists.
type LanguageNotAddedError struct {
	UserID     int64
	LanguageID int64
}

func (e *LanguageNotAddedError) Error() string {
	return fmt.Sprintf("user %d does not have language %d", e.UserID, e.LanguageID)
}

func (e *LanguageNotAddedError) Is(target error) bool {
	return target == ErrLanguageNotAdded
}

// NativeLanguageCannotBeRemovedError reports a deletion attempted on the
// native association.
type NativeLanguageCannotBeRemovedError struct {
	UserID     int64
	LanguageID int64
}

func (e *NativeLanguageCannotBeRemovedError) Error() string {
	return fmt.Sprintf(
		"language %d is the native language of user %d and cannot be removed",
		e.LanguageID, e.UserID,
	)
}

func (e *NativeLanguageCannotBeRemovedError) Is(target error) bool {
	return target == ErrNativeLanguageCannotBeRemoved
}

// MultipleNativeLanguagesError reports a user that would end up with more
// than one native language.
type MultipleNativeLanguagesError struct {
	UserID int64
}

func (e *MultipleNativeLanguagesError) Error() string {
	return fmt.Sprintf("user %d already has a native language", e.UserID)
}

func (e *MultipleNativeLanguagesError) Is(target error) bool {
	return target == ErrMultipleNativeLanguages
}

// InvalidCredentialsError reports a failed login attempt. The email is kept
// for logging only; Error never reveals whether the account exists.
type InvalidCredentialsError struct {
	Email string
}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}
