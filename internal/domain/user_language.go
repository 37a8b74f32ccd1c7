package domain

import (
	"errors"
	"time"
)

// Common validation errors
var (
	ErrInvalidUserID     = errors.New("user ID must be positive")
	ErrInvalidLanguageID = errors.New("language ID must be positive")
)

// UserLanguage links a user to a language, unique per (user, language) pair.
// At most one association per user may have IsNative set. The value is
// immutable: AsNative and AsLearning return modified copies, so a previously
// held reference stays valid.
type UserLanguage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	LanguageID int64     `json:"language_id"`
	IsNative   bool      `json:"is_native"`
	AddedAt    time.Time `json:"added_at"`
}

// NewUserLanguage creates an association between a user and a language.
// The ID is zero until the store assigns one.
func NewUserLanguage(userID, languageID int64, isNative bool) (*UserLanguage, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if languageID <= 0 {
		return nil, ErrInvalidLanguageID
	}

	return &UserLanguage{
		UserID:     userID,
		LanguageID: languageID,
		IsNative:   isNative,
		AddedAt:    time.Now().UTC(),
	}, nil
}

// NewLearningLanguage creates an association with the learning flag, the
// state every language starts in.
func NewLearningLanguage(userID, languageID int64) (*UserLanguage, error) {
	return NewUserLanguage(userID, languageID, false)
}

// NewNativeLanguage creates an association already marked native.
func NewNativeLanguage(userID, languageID int64) (*UserLanguage, error) {
	return NewUserLanguage(userID, languageID, true)
}

// Validate checks that both referenced identifiers are positive.
func (ul *UserLanguage) Validate() error {
	if ul.UserID <= 0 {
		return ErrInvalidUserID
	}
	if ul.LanguageID <= 0 {
		return ErrInvalidLanguageID
	}
	return nil
}

// IsLearning reports whether the user is learning this language rather than
// speaking it natively.
func (ul *UserLanguage) IsLearning() bool {
	return !ul.IsNative
}

// AsNative returns a copy marked as the user's native language.
func (ul *UserLanguage) AsNative() *UserLanguage {
	c := *ul
	c.IsNative = true
	return &c
}

// AsLearning returns a copy demoted to a learning language.
func (ul *UserLanguage) AsLearning() *UserLanguage {
	c := *ul
	c.IsNative = false
	return &c
}

// WithID returns a copy carrying the store-assigned id.
func (ul *UserLanguage) WithID(id int64) *UserLanguage {
	c := *ul
	c.ID = id
	return &c
}
