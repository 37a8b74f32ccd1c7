package domain

import (
	"errors"
	"testing"
)

func TestNewLanguage(t *testing.T) {
	lang, err := NewLanguage("  Spanish  ", " ES ", "https://flagcdn.com/es.svg")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if lang.Name != "Spanish" {
		t.Errorf("Expected trimmed name, got %q", lang.Name)
	}
	if lang.Code != "es" {
		t.Errorf("Expected normalized code es, got %q", lang.Code)
	}
	if lang.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}

	_, err = NewLanguage("", "es", "")
	if !errors.Is(err, ErrEmptyLanguageName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyLanguageName, err)
	}

	for _, code := range []string{"", "e", "esp", "e1", "E$"} {
		if _, err := NewLanguage("Spanish", code, ""); !errors.Is(err, ErrInvalidLanguageCode) {
			t.Errorf("Expected code %q to be rejected, got %v", code, err)
		}
	}
}

func TestLanguageWithID(t *testing.T) {
	lang, err := NewLanguage("French", "fr", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	copied := lang.WithID(7)
	if lang.ID != 0 {
		t.Error("WithID mutated the receiver")
	}
	if copied.ID != 7 {
		t.Errorf("Expected ID 7, got %d", copied.ID)
	}
}
