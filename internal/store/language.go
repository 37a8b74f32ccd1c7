package store

import (
	"context"

	"github.com/linguary/lingua-api/internal/domain"
)

// LanguageStore defines read access to the language catalog. The catalog is
// seeded by migrations; the services never write to it.
type LanguageStore interface {
	// GetByID retrieves a language by id.
	// Returns ErrLanguageNotFound if the language does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Language, error)

	// GetByCode retrieves a language by ISO 639-1 code (case-insensitive).
	// Returns ErrLanguageNotFound if the language does not exist.
	GetByCode(ctx context.Context, code string) (*domain.Language, error)

	// List returns the whole catalog ordered by name.
	List(ctx context.Context) ([]*domain.Language, error)

	// SearchByName returns languages whose name contains the term,
	// case-insensitively, ordered by name.
	SearchByName(ctx context.Context, term string) ([]*domain.Language, error)

	// ExistsByID reports whether a language with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
