package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/store"
)

// MockUserLanguageStore implements store.UserLanguageStore for testing.
// The default implementation keeps associations in a map keyed by id and
// enforces the same uniqueness rules as the real schema.
type MockUserLanguageStore struct {
	// Function fields for customizable behavior
	SaveFn                    func(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error)
	GetByUserAndLanguageFn    func(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error)
	ListByUserFn              func(ctx context.Context, userID int64) ([]*domain.UserLanguage, error)
	GetNativeByUserFn         func(ctx context.Context, userID int64) (*domain.UserLanguage, error)
	ListLearningByUserFn      func(ctx context.Context, userID int64) ([]*domain.UserLanguage, error)
	ExistsByUserAndLanguageFn func(ctx context.Context, userID, languageID int64) (bool, error)
	DeleteByUserAndLanguageFn func(ctx context.Context, userID, languageID int64) error

	// Data for the default map-backed implementation
	Associations map[int64]*domain.UserLanguage
	nextID       int64
}

// NewMockUserLanguageStore creates a new mock store with initialized
// defaults.
func NewMockUserLanguageStore() *MockUserLanguageStore {
	return &MockUserLanguageStore{
		Associations: make(map[int64]*domain.UserLanguage),
		nextID:       1,
	}
}

var _ store.UserLanguageStore = (*MockUserLanguageStore)(nil)

// Save implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) Save(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, ul)
	}

	if ul.ID == 0 {
		for _, existing := range m.Associations {
			if existing.UserID == ul.UserID && existing.LanguageID == ul.LanguageID {
				return nil, store.ErrUserLanguageExists
			}
		}
	}
	if ul.IsNative {
		for _, existing := range m.Associations {
			if existing.UserID == ul.UserID && existing.IsNative && existing.ID != ul.ID {
				return nil, store.ErrNativeLanguageExists
			}
		}
	}

	saved := *ul
	if saved.ID == 0 {
		saved.ID = m.nextID
		m.nextID++
	} else if _, exists := m.Associations[saved.ID]; !exists {
		return nil, store.ErrUserLanguageNotFound
	}
	m.Associations[saved.ID] = &saved
	return &saved, nil
}

// GetByUserAndLanguage implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) GetByUserAndLanguage(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error) {
	if m.GetByUserAndLanguageFn != nil {
		return m.GetByUserAndLanguageFn(ctx, userID, languageID)
	}

	for _, ul := range m.Associations {
		if ul.UserID == userID && ul.LanguageID == languageID {
			return ul, nil
		}
	}
	return nil, store.ErrUserLanguageNotFound
}

// ListByUser implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) ListByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.collect(func(ul *domain.UserLanguage) bool {
		return ul.UserID == userID
	}), nil
}

// GetNativeByUser implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) GetNativeByUser(ctx context.Context, userID int64) (*domain.UserLanguage, error) {
	if m.GetNativeByUserFn != nil {
		return m.GetNativeByUserFn(ctx, userID)
	}

	for _, ul := range m.Associations {
		if ul.UserID == userID && ul.IsNative {
			return ul, nil
		}
	}
	return nil, store.ErrUserLanguageNotFound
}

// ListLearningByUser implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) ListLearningByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	if m.ListLearningByUserFn != nil {
		return m.ListLearningByUserFn(ctx, userID)
	}
	return m.collect(func(ul *domain.UserLanguage) bool {
		return ul.UserID == userID && !ul.IsNative
	}), nil
}

// ExistsByUserAndLanguage implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) ExistsByUserAndLanguage(ctx context.Context, userID, languageID int64) (bool, error) {
	if m.ExistsByUserAndLanguageFn != nil {
		return m.ExistsByUserAndLanguageFn(ctx, userID, languageID)
	}

	for _, ul := range m.Associations {
		if ul.UserID == userID && ul.LanguageID == languageID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteByUserAndLanguage implements the UserLanguageStore interface.
func (m *MockUserLanguageStore) DeleteByUserAndLanguage(ctx context.Context, userID, languageID int64) error {
	if m.DeleteByUserAndLanguageFn != nil {
		return m.DeleteByUserAndLanguageFn(ctx, userID, languageID)
	}

	for id, ul := range m.Associations {
		if ul.UserID == userID && ul.LanguageID == languageID {
			delete(m.Associations, id)
			return nil
		}
	}
	return store.ErrUserLanguageNotFound
}

// WithTx implements the UserLanguageStore interface for transaction support.
func (m *MockUserLanguageStore) WithTx(tx *sql.Tx) store.UserLanguageStore {
	return m
}

func (m *MockUserLanguageStore) collect(match func(*domain.UserLanguage) bool) []*domain.UserLanguage {
	var uls []*domain.UserLanguage
	for _, ul := range m.Associations {
		if match(ul) {
			uls = append(uls, ul)
		}
	}
	sort.Slice(uls, func(i, j int) bool { return uls[i].ID < uls[j].ID })
	return uls
}
