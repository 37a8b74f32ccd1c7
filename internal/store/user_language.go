package store

import (
	"context"
	"database/sql"

	"github.com/linguary/lingua-api/internal/domain"
)

// UserLanguageStore defines the interface for user-language association
// persistence.
type UserLanguageStore interface {
	// Save inserts the association if its ID is zero, otherwise updates it.
	// Returns the stored association with the assigned id.
	// Returns ErrUserLanguageExists on a duplicate (user, language) pair and
	// ErrNativeLanguageExists if the write would give the user a second
	// native association.
	Save(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error)

	// GetByUserAndLanguage retrieves the association for the pair.
	// Returns ErrUserLanguageNotFound if it does not exist.
	GetByUserAndLanguage(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error)

	// ListByUser returns all of the user's associations ordered by AddedAt.
	ListByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error)

	// GetNativeByUser retrieves the user's native association.
	// Returns ErrUserLanguageNotFound if the user has none.
	GetNativeByUser(ctx context.Context, userID int64) (*domain.UserLanguage, error)

	// ListLearningByUser returns the associations with IsNative unset,
	// ordered by AddedAt.
	ListLearningByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error)

	// ExistsByUserAndLanguage reports whether the pair is associated.
	ExistsByUserAndLanguage(ctx context.Context, userID, languageID int64) (bool, error)

	// DeleteByUserAndLanguage removes the association for the pair.
	// Returns ErrUserLanguageNotFound if it does not exist.
	DeleteByUserAndLanguage(ctx context.Context, userID, languageID int64) error

	// WithTx returns a UserLanguageStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserLanguageStore
}
