package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/store"
)

// LanguageService exposes the read-only language catalog.
type LanguageService struct {
	languages   store.LanguageStore
	startingIDs []int64
	logger      *slog.Logger
}

// NewLanguageService creates a LanguageService. startingIDs selects the
// catalog entries offered to new users as suggested starting languages.
func NewLanguageService(languages store.LanguageStore, startingIDs []int64, logger *slog.Logger) (*LanguageService, error) {
	if languages == nil {
		return nil, errors.New("language store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &LanguageService{
		languages:   languages,
		startingIDs: startingIDs,
		logger:      logger.With(slog.String("component", "language_service")),
	}, nil
}

// All returns every catalog language ordered by name.
func (s *LanguageService) All(ctx context.Context) ([]*domain.Language, error) {
	langs, err := s.languages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return langs, nil
}

// ByID returns the catalog language with the given ID.
func (s *LanguageService) ByID(ctx context.Context, id int64) (*domain.Language, error) {
	lang, err := s.languages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrLanguageNotFound) {
			return nil, &domain.LanguageNotFoundError{LanguageID: id}
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return lang, nil
}

// ByCode returns the catalog language with the given ISO 639-1 code.
// Codes are matched case-insensitively.
func (s *LanguageService) ByCode(ctx context.Context, code string) (*domain.Language, error) {
	lang, err := s.languages.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, store.ErrLanguageNotFound) {
			return nil, fmt.Errorf("language with code %q: %w", code, domain.ErrLanguageNotFound)
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return lang, nil
}

// Search returns catalog languages whose name contains the query,
// case-insensitively. An empty query returns the full catalog.
func (s *LanguageService) Search(ctx context.Context, query string) ([]*domain.Language, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.All(ctx)
	}
	langs, err := s.languages.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search languages: %w", err)
	}
	return langs, nil
}

// StartingLanguages returns the configured starter set for new users.
// Configured IDs missing from the catalog are skipped with a warning
// rather than failing the whole listing.
func (s *LanguageService) StartingLanguages(ctx context.Context) ([]*domain.Language, error) {
	langs := make([]*domain.Language, 0, len(s.startingIDs))
	for _, id := range s.startingIDs {
		lang, err := s.languages.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrLanguageNotFound) {
				s.logger.WarnContext(ctx, "starting language missing from catalog", slog.Int64("language_id", id))
				continue
			}
			return nil, fmt.Errorf("failed to get language: %w", err)
		}
		langs = append(langs, lang)
	}
	return langs, nil
}
