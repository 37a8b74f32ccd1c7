package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/platform/logger"
	"github.com/linguary/lingua-api/internal/store"
)

// PostgresUserLanguageStore implements the store.UserLanguageStore
// interface. The one-native-per-user rule is backed by a partial unique
// index, so a racing second native write fails here rather than silently
// winning.
type PostgresUserLanguageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserLanguageStore creates a new PostgreSQL implementation of
// the UserLanguageStore interface. If logger is nil, a default logger is
// used.
func NewPostgresUserLanguageStore(db store.DBTX, logger *slog.Logger) *PostgresUserLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserLanguageStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_language_store")),
	}
}

var _ store.UserLanguageStore = (*PostgresUserLanguageStore)(nil)

const userLanguageColumns = `id, user_id, language_id, is_native, added_at`

// Save implements store.UserLanguageStore.Save: insert when the ID is
// zero, update otherwise.
// Returns store.ErrUserLanguageExists on a duplicate pair and
// store.ErrNativeLanguageExists when the write would give the user a
// second native language.
func (s *PostgresUserLanguageStore) Save(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ul.Validate(); err != nil {
		log.Warn("user language validation failed during save",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ul.UserID),
			slog.Int64("language_id", ul.LanguageID))
		return nil, err
	}

	if ul.ID == 0 {
		return s.insert(ctx, ul)
	}
	return s.update(ctx, ul)
}

func (s *PostgresUserLanguageStore) insert(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_languages (user_id, language_id, is_native, added_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	saved := *ul
	err := s.db.QueryRowContext(
		ctx,
		query,
		ul.UserID,
		ul.LanguageID,
		ul.IsNative,
		ul.AddedAt,
	).Scan(&saved.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate user language during insert",
				slog.Int64("user_id", ul.UserID),
				slog.Int64("language_id", ul.LanguageID),
				slog.Bool("is_native", ul.IsNative))
			return nil, mapped
		}
		log.Error("failed to insert user language",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ul.UserID),
			slog.Int64("language_id", ul.LanguageID))
		return nil, mapped
	}

	log.Info("user language saved",
		slog.Int64("user_id", saved.UserID),
		slog.Int64("language_id", saved.LanguageID),
		slog.Bool("is_native", saved.IsNative))
	return &saved, nil
}

func (s *PostgresUserLanguageStore) update(ctx context.Context, ul *domain.UserLanguage) (*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE user_languages
		SET user_id = $1, language_id = $2, is_native = $3, added_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		ul.UserID,
		ul.LanguageID,
		ul.IsNative,
		ul.AddedAt,
		ul.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate user language during update",
				slog.Int64("user_id", ul.UserID),
				slog.Int64("language_id", ul.LanguageID),
				slog.Bool("is_native", ul.IsNative))
			return nil, mapped
		}
		log.Error("failed to update user language",
			slog.String("error", err.Error()),
			slog.Int64("id", ul.ID))
		return nil, mapped
	}
	if err := CheckRowsAffected(result, store.ErrUserLanguageNotFound); err != nil {
		return nil, err
	}

	log.Debug("user language updated",
		slog.Int64("id", ul.ID),
		slog.Bool("is_native", ul.IsNative))
	updated := *ul
	return &updated, nil
}

// GetByUserAndLanguage implements store.UserLanguageStore.GetByUserAndLanguage.
// Returns store.ErrUserLanguageNotFound if the pair is not associated.
func (s *PostgresUserLanguageStore) GetByUserAndLanguage(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error) {
	query := `SELECT ` + userLanguageColumns + ` FROM user_languages WHERE user_id = $1 AND language_id = $2`
	ul, err := s.scanUserLanguage(s.db.QueryRowContext(ctx, query, userID, languageID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserLanguageNotFound
		}
		return nil, MapError(err)
	}
	return ul, nil
}

// ListByUser implements store.UserLanguageStore.ListByUser, ordered by
// when the language was added.
func (s *PostgresUserLanguageStore) ListByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	query := `SELECT ` + userLanguageColumns + ` FROM user_languages WHERE user_id = $1 ORDER BY added_at, id`
	return s.queryUserLanguages(ctx, query, userID)
}

// GetNativeByUser implements store.UserLanguageStore.GetNativeByUser.
// Returns store.ErrUserLanguageNotFound if the user has no native language.
func (s *PostgresUserLanguageStore) GetNativeByUser(ctx context.Context, userID int64) (*domain.UserLanguage, error) {
	query := `SELECT ` + userLanguageColumns + ` FROM user_languages WHERE user_id = $1 AND is_native`
	ul, err := s.scanUserLanguage(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserLanguageNotFound
		}
		return nil, MapError(err)
	}
	return ul, nil
}

// ListLearningByUser implements store.UserLanguageStore.ListLearningByUser.
func (s *PostgresUserLanguageStore) ListLearningByUser(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	query := `SELECT ` + userLanguageColumns + ` FROM user_languages WHERE user_id = $1 AND NOT is_native ORDER BY added_at, id`
	return s.queryUserLanguages(ctx, query, userID)
}

// ExistsByUserAndLanguage implements store.UserLanguageStore.ExistsByUserAndLanguage.
func (s *PostgresUserLanguageStore) ExistsByUserAndLanguage(ctx context.Context, userID, languageID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM user_languages WHERE user_id = $1 AND language_id = $2)`,
		userID,
		languageID,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// DeleteByUserAndLanguage implements store.UserLanguageStore.DeleteByUserAndLanguage.
// Returns store.ErrUserLanguageNotFound if the pair is not associated.
func (s *PostgresUserLanguageStore) DeleteByUserAndLanguage(ctx context.Context, userID, languageID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM user_languages WHERE user_id = $1 AND language_id = $2`,
		userID,
		languageID,
	)
	if err != nil {
		log.Error("failed to delete user language",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("language_id", languageID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrUserLanguageNotFound); err != nil {
		return err
	}

	log.Info("user language deleted",
		slog.Int64("user_id", userID),
		slog.Int64("language_id", languageID))
	return nil
}

// WithTx implements store.UserLanguageStore.WithTx.
func (s *PostgresUserLanguageStore) WithTx(tx *sql.Tx) store.UserLanguageStore {
	return &PostgresUserLanguageStore{db: tx, logger: s.logger}
}

func (s *PostgresUserLanguageStore) queryUserLanguages(ctx context.Context, query string, args ...any) ([]*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query user languages", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var uls []*domain.UserLanguage
	for rows.Next() {
		ul, err := s.scanUserLanguage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user language row: %w", err)
		}
		uls = append(uls, ul)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return uls, nil
}

func (s *PostgresUserLanguageStore) scanUserLanguage(row scanner) (*domain.UserLanguage, error) {
	var ul domain.UserLanguage
	err := row.Scan(
		&ul.ID,
		&ul.UserID,
		&ul.LanguageID,
		&ul.IsNative,
		&ul.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ul, nil
}
