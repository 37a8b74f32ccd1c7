package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/platform/logger"
	"github.com/linguary/lingua-api/internal/store"
)

// PostgresLanguageStore implements the store.LanguageStore interface.
// The catalog is seeded by migrations and read-only at runtime, so the
// store only exposes lookups.
type PostgresLanguageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLanguageStore creates a new PostgreSQL implementation of the
// LanguageStore interface. If logger is nil, a default logger is used.
func NewPostgresLanguageStore(db store.DBTX, logger *slog.Logger) *PostgresLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLanguageStore{
		db:     db,
		logger: logger.With(slog.String("component", "language_store")),
	}
}

var _ store.LanguageStore = (*PostgresLanguageStore)(nil)

const languageColumns = `id, name, code, flag_url, created_at`

// GetByID implements store.LanguageStore.GetByID.
// Returns store.ErrLanguageNotFound if the language does not exist.
func (s *PostgresLanguageStore) GetByID(ctx context.Context, id int64) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + languageColumns + ` FROM languages WHERE id = $1`
	lang, err := s.scanLanguage(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("language not found", slog.Int64("language_id", id))
			return nil, store.ErrLanguageNotFound
		}
		log.Error("failed to get language by id",
			slog.String("error", err.Error()),
			slog.Int64("language_id", id))
		return nil, MapError(err)
	}
	return lang, nil
}

// GetByCode implements store.LanguageStore.GetByCode. Codes are stored
// lowercase; lookup is case-insensitive.
// Returns store.ErrLanguageNotFound if the language does not exist.
func (s *PostgresLanguageStore) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + languageColumns + ` FROM languages WHERE code = $1`
	lang, err := s.scanLanguage(s.db.QueryRowContext(ctx, query, strings.ToLower(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("language not found by code", slog.String("code", code))
			return nil, store.ErrLanguageNotFound
		}
		log.Error("failed to get language by code",
			slog.String("error", err.Error()),
			slog.String("code", code))
		return nil, MapError(err)
	}
	return lang, nil
}

// List implements store.LanguageStore.List, ordered by name.
func (s *PostgresLanguageStore) List(ctx context.Context) ([]*domain.Language, error) {
	query := `SELECT ` + languageColumns + ` FROM languages ORDER BY name`
	return s.queryLanguages(ctx, query)
}

// SearchByName implements store.LanguageStore.SearchByName with a
// case-insensitive substring match, ordered by name.
func (s *PostgresLanguageStore) SearchByName(ctx context.Context, query string) ([]*domain.Language, error) {
	q := `SELECT ` + languageColumns + ` FROM languages WHERE name ILIKE $1 ORDER BY name`
	return s.queryLanguages(ctx, q, "%"+query+"%")
}

// ExistsByID implements store.LanguageStore.ExistsByID.
func (s *PostgresLanguageStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM languages WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

func (s *PostgresLanguageStore) queryLanguages(ctx context.Context, query string, args ...any) ([]*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query languages", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var langs []*domain.Language
	for rows.Next() {
		lang, err := s.scanLanguage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan language row: %w", err)
		}
		langs = append(langs, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return langs, nil
}

func (s *PostgresLanguageStore) scanLanguage(row scanner) (*domain.Language, error) {
	var lang domain.Language
	err := row.Scan(
		&lang.ID,
		&lang.Name,
		&lang.Code,
		&lang.FlagURL,
		&lang.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}
