package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/linguary/lingua-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Constraint names from the migrations. Unique violations are mapped to
// specific store sentinels by the constraint that fired.
const (
	constraintUsersEmail          = "users_email_key"
	constraintUserLanguagesPair   = "user_languages_user_id_language_id_key"
	constraintUserLanguagesNative = "uq_user_languages_one_native"
	constraintLanguagesCode       = "languages_code_key"
)

// MapError translates a database error into the store package's sentinel
// errors, wrapping the original for context. Errors with no specific
// mapping pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case constraintUsersEmail:
				return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
			case constraintUserLanguagesPair:
				return fmt.Errorf("%w: %v", store.ErrUserLanguageExists, err)
			case constraintUserLanguagesNative:
				return fmt.Errorf("%w: %v", store.ErrNativeLanguageExists, err)
			case constraintLanguagesCode:
				return fmt.Errorf("%w: language code already exists: %v", store.ErrDuplicate, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err,
			)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns a wrapped notFound error when a write touched
// no rows. UPDATE and DELETE use it to detect missing targets.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
