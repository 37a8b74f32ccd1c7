package mocks

import (
	"context"
	"strings"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/store"
)

// MockLanguageStore implements store.LanguageStore for testing.
type MockLanguageStore struct {
	// Function fields for customizable behavior
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Language, error)
	GetByCodeFn    func(ctx context.Context, code string) (*domain.Language, error)
	ListFn         func(ctx context.Context) ([]*domain.Language, error)
	SearchByNameFn func(ctx context.Context, query string) ([]*domain.Language, error)
	ExistsByIDFn   func(ctx context.Context, id int64) (bool, error)

	// Data for the default map-backed implementation
	Languages map[int64]*domain.Language
}

// NewMockLanguageStore creates a new mock store with initialized defaults.
func NewMockLanguageStore() *MockLanguageStore {
	return &MockLanguageStore{
		Languages: make(map[int64]*domain.Language),
	}
}

var _ store.LanguageStore = (*MockLanguageStore)(nil)

// Seed adds a language to the backing map and returns the store for
// chaining in test setup.
func (m *MockLanguageStore) Seed(langs ...*domain.Language) *MockLanguageStore {
	for _, l := range langs {
		m.Languages[l.ID] = l
	}
	return m
}

// GetByID implements the LanguageStore interface.
func (m *MockLanguageStore) GetByID(ctx context.Context, id int64) (*domain.Language, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	lang, exists := m.Languages[id]
	if !exists {
		return nil, store.ErrLanguageNotFound
	}
	return lang, nil
}

// GetByCode implements the LanguageStore interface.
func (m *MockLanguageStore) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}

	for _, lang := range m.Languages {
		if strings.EqualFold(lang.Code, code) {
			return lang, nil
		}
	}
	return nil, store.ErrLanguageNotFound
}

// List implements the LanguageStore interface.
func (m *MockLanguageStore) List(ctx context.Context) ([]*domain.Language, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	langs := make([]*domain.Language, 0, len(m.Languages))
	for _, lang := range m.Languages {
		langs = append(langs, lang)
	}
	return langs, nil
}

// SearchByName implements the LanguageStore interface.
func (m *MockLanguageStore) SearchByName(ctx context.Context, query string) ([]*domain.Language, error) {
	if m.SearchByNameFn != nil {
		return m.SearchByNameFn(ctx, query)
	}

	var langs []*domain.Language
	for _, lang := range m.Languages {
		if strings.Contains(strings.ToLower(lang.Name), strings.ToLower(query)) {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// ExistsByID implements the LanguageStore interface.
func (m *MockLanguageStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, id)
	}

	_, exists := m.Languages[id]
	return exists, nil
}
