package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrEmptyLanguageName   = errors.New("language name cannot be empty")
	ErrInvalidLanguageCode = errors.New("language code must be two lowercase letters (ISO 639-1)")
)

// languageCodePattern matches ISO 639-1 codes: exactly two lowercase letters.
var languageCodePattern = regexp.MustCompile(`^[a-z]{2}$`)

// Language is an immutable catalog entry. The catalog is seeded by a
// migration and read-only from the core's perspective.
type Language struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	FlagURL   string    `json:"flag_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLanguage creates a catalog entry, trimming the name and normalizing the
// code to lowercase before validating.
func NewLanguage(name, code, flagURL string) (*Language, error) {
	lang := &Language{
		Name:      strings.TrimSpace(name),
		Code:      strings.ToLower(strings.TrimSpace(code)),
		FlagURL:   flagURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return lang, nil
}

// Validate checks the language's fields against the catalog invariants.
func (l *Language) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyLanguageName
	}
	if !languageCodePattern.MatchString(l.Code) {
		return ErrInvalidLanguageCode
	}
	return nil
}

// WithID returns a copy carrying the store-assigned id.
func (l *Language) WithID(id int64) *Language {
	c := *l
	c.ID = id
	return &c
}

// WithFlagURL returns a copy with an updated flag image reference.
func (l *Language) WithFlagURL(flagURL string) *Language {
	c := *l
	c.FlagURL = flagURL
	return &c
}
