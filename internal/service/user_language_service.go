package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/store"
)

// UserLanguageService manages the association between users and the
// languages they speak or learn. All writes go through this service so
// that the single-native-language rule holds.
type UserLanguageService struct {
	users         store.UserStore
	languages     store.LanguageStore
	userLanguages store.UserLanguageStore
	db            *sql.DB
	logger        *slog.Logger
}

// NewUserLanguageService creates a UserLanguageService. The db handle is
// used to run multi-row updates transactionally; it may be nil, in which
// case writes go directly to the stores.
func NewUserLanguageService(
	users store.UserStore,
	languages store.LanguageStore,
	userLanguages store.UserLanguageStore,
	db *sql.DB,
	logger *slog.Logger,
) (*UserLanguageService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if languages == nil {
		return nil, errors.New("language store cannot be nil")
	}
	if userLanguages == nil {
		return nil, errors.New("user language store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &UserLanguageService{
		users:         users,
		languages:     languages,
		userLanguages: userLanguages,
		db:            db,
		logger:        logger.With(slog.String("component", "user_language_service")),
	}, nil
}

// AddLanguage associates a language with a user as a learning language.
// The user and language must both exist, and the pair must not already be
// associated.
func (s *UserLanguageService) AddLanguage(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureLanguage(ctx, languageID); err != nil {
		return nil, err
	}

	exists, err := s.userLanguages.ExistsByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing association: %w", err)
	}
	if exists {
		return nil, &domain.LanguageAlreadyAddedError{UserID: userID, LanguageID: languageID}
	}

	ul, err := domain.NewLearningLanguage(userID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user language: %w", err)
	}

	saved, err := s.userLanguages.Save(ctx, ul)
	if err != nil {
		if errors.Is(err, store.ErrUserLanguageExists) {
			return nil, &domain.LanguageAlreadyAddedError{UserID: userID, LanguageID: languageID}
		}
		return nil, fmt.Errorf("failed to save user language: %w", err)
	}

	s.logger.InfoContext(ctx, "language added",
		slog.Int64("user_id", userID),
		slog.Int64("language_id", languageID))
	return saved, nil
}

// SetNativeLanguage marks the given language as the user's native language.
// The language must already be associated with the user. Any previously
// native language is demoted to a learning language in the same
// transaction, so the user never has more than one native language.
func (s *UserLanguageService) SetNativeLanguage(ctx context.Context, userID, languageID int64) (*domain.UserLanguage, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureLanguage(ctx, languageID); err != nil {
		return nil, err
	}

	target, err := s.userLanguages.GetByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		if errors.Is(err, store.ErrUserLanguageNotFound) {
			return nil, &domain.LanguageNotAddedError{UserID: userID, LanguageID: languageID}
		}
		return nil, fmt.Errorf("failed to get user language: %w", err)
	}
	if target.IsNative {
		return target, nil
	}

	var promoted *domain.UserLanguage
	err = s.runInTx(ctx, func(ctx context.Context, userLanguages store.UserLanguageStore) error {
		current, err := userLanguages.GetNativeByUser(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrUserLanguageNotFound) {
			return fmt.Errorf("failed to get native language: %w", err)
		}
		if current != nil && current.LanguageID != languageID {
			if _, err := userLanguages.Save(ctx, current.AsLearning()); err != nil {
				return fmt.Errorf("failed to demote native language: %w", err)
			}
		}
		promoted, err = userLanguages.Save(ctx, target.AsNative())
		if err != nil {
			return fmt.Errorf("failed to promote native language: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "native language set",
		slog.Int64("user_id", userID),
		slog.Int64("language_id", languageID))
	return promoted, nil
}

// RemoveLanguage removes the association between a user and a language.
// Removing a language that is not associated is a no-op; removing the
// native language is rejected.
func (s *UserLanguageService) RemoveLanguage(ctx context.Context, userID, languageID int64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	ul, err := s.userLanguages.GetByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		if errors.Is(err, store.ErrUserLanguageNotFound) {
			// Already absent, nothing to do.
			return nil
		}
		return fmt.Errorf("failed to get user language: %w", err)
	}
	if ul.IsNative {
		return &domain.NativeLanguageCannotBeRemovedError{UserID: userID, LanguageID: languageID}
	}

	if err := s.userLanguages.DeleteByUserAndLanguage(ctx, userID, languageID); err != nil {
		if errors.Is(err, store.ErrUserLanguageNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete user language: %w", err)
	}

	s.logger.InfoContext(ctx, "language removed",
		slog.Int64("user_id", userID),
		slog.Int64("language_id", languageID))
	return nil
}

// GetUserLanguages returns every language association for the user.
func (s *UserLanguageService) GetUserLanguages(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	uls, err := s.userLanguages.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user languages: %w", err)
	}
	return uls, nil
}

// GetNativeLanguage returns the user's native language association, or
// nil when the user has not declared one.
func (s *UserLanguageService) GetNativeLanguage(ctx context.Context, userID int64) (*domain.UserLanguage, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	ul, err := s.userLanguages.GetNativeByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserLanguageNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get native language: %w", err)
	}
	return ul, nil
}

// GetLearningLanguages returns the user's learning (non-native) language
// associations.
func (s *UserLanguageService) GetLearningLanguages(ctx context.Context, userID int64) ([]*domain.UserLanguage, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	uls, err := s.userLanguages.ListLearningByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning languages: %w", err)
	}
	return uls, nil
}

func (s *UserLanguageService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return &domain.UserNotFoundError{UserID: userID}
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func (s *UserLanguageService) ensureLanguage(ctx context.Context, languageID int64) error {
	exists, err := s.languages.ExistsByID(ctx, languageID)
	if err != nil {
		return fmt.Errorf("failed to check language: %w", err)
	}
	if !exists {
		return &domain.LanguageNotFoundError{LanguageID: languageID}
	}
	return nil
}

func (s *UserLanguageService) runInTx(ctx context.Context, fn func(ctx context.Context, userLanguages store.UserLanguageStore) error) error {
	if s.db == nil {
		return fn(ctx, s.userLanguages)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userLanguages.WithTx(tx))
	})
}
