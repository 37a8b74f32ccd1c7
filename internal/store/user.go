package store

import (
	"context"
	"database/sql"

	"github.com/linguary/lingua-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user and returns it with the assigned id.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]*domain.User, error)

	// Update persists a complete user record.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// if the update would collide with another account's email.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	// Delete removes a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// ExistsByEmail reports whether any user has the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
