package mocks

import (
	"context"
	"database/sql"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteFn        func(ctx context.Context, id int64) error
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)

	// Data for the default map-backed implementation
	Users  map[string]*domain.User
	nextID int64
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.Email]; exists {
		return nil, store.ErrEmailExists
	}

	created := user.WithID(m.nextID)
	m.nextID++
	m.Users[created.Email] = created
	return created, nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for email, existing := range m.Users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, exists := m.Users[user.Email]; exists {
					return nil, store.ErrEmailExists
				}
				delete(m.Users, email)
			}
			m.Users[user.Email] = user
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// ExistsByEmail implements the UserStore interface.
func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}

	_, exists := m.Users[email]
	return exists, nil
}

// WithTx implements the UserStore interface for transaction support.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
