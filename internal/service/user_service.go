package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/service/auth"
	"github.com/linguary/lingua-api/internal/store"
)

// UserService manages user accounts: registration, lookup, profile
// updates, activation, and credential changes.
type UserService struct {
	users         store.UserStore
	languages     store.LanguageStore
	userLanguages store.UserLanguageStore
	passwords     auth.PasswordVerifier
	logger        *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	languages store.LanguageStore,
	userLanguages store.UserLanguageStore,
	passwords auth.PasswordVerifier,
	logger *slog.Logger,
) (*UserService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if languages == nil {
		return nil, errors.New("language store cannot be nil")
	}
	if userLanguages == nil {
		return nil, errors.New("user language store cannot be nil")
	}
	if passwords == nil {
		return nil, errors.New("password verifier cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &UserService{
		users:         users,
		languages:     languages,
		userLanguages: userLanguages,
		passwords:     passwords,
		logger:        logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register creates a new active user account with the given role. The
// email must not already be registered.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string, role domain.Role) (*domain.User, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, store.ErrEmailExists
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(email, hashed, firstName, lastName, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, store.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.Int64("user_id", created.ID))
	return created, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, &domain.UserNotFoundError{UserID: id}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, &domain.UserNotFoundError{Email: email}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update changes a user's name and roles. Email, password, status, and
// avatar seed are preserved; they have dedicated operations.
func (s *UserService) Update(ctx context.Context, id int64, firstName, lastName string, roles []domain.Role) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := user.WithName(firstName, lastName)
	if len(roles) > 0 {
		updated = updated.WithRoles(roles)
	}
	saved, err := s.users.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.InfoContext(ctx, "user updated", slog.Int64("user_id", id))
	return saved, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return &domain.UserNotFoundError{UserID: id}
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.InfoContext(ctx, "user deleted", slog.Int64("user_id", id))
	return nil
}

// Activate sets the user's status to active.
func (s *UserService) Activate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setStatus(ctx, id, func(u *domain.User) *domain.User { return u.Activated() })
}

// Deactivate sets the user's status to inactive.
func (s *UserService) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setStatus(ctx, id, func(u *domain.User) *domain.User { return u.Deactivated() })
}

func (s *UserService) setStatus(ctx context.Context, id int64, transition func(*domain.User) *domain.User) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	saved, err := s.users.Update(ctx, transition(user))
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	s.logger.InfoContext(ctx, "user status changed",
		slog.Int64("user_id", id),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

// ChangePassword replaces the user's password after verifying the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Compare(user.HashedPassword, currentPassword); err != nil {
		s.logger.WarnContext(ctx, "password change rejected", slog.Int64("user_id", id))
		return &domain.InvalidCredentialsError{Email: user.Email}
	}
	hashed, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.users.Update(ctx, user.WithHashedPassword(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.logger.InfoContext(ctx, "password changed", slog.Int64("user_id", id))
	return nil
}

// ChangeEmail replaces the user's email. The new email must be valid and
// not already registered.
func (s *UserService) ChangeEmail(ctx context.Context, id int64, newEmail string) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Email == newEmail {
		return user, nil
	}
	exists, err := s.users.ExistsByEmail(ctx, newEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, store.ErrEmailExists
	}
	updated := user.WithEmail(newEmail)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.users.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}
	s.logger.InfoContext(ctx, "email changed", slog.Int64("user_id", id))
	return saved, nil
}

// UserProfile is a user together with their resolved language catalog
// entries.
type UserProfile struct {
	User     *domain.User
	Native   *domain.Language
	Learning []*domain.Language
}

// Profile returns the user's profile with their native and learning
// languages resolved against the catalog.
func (s *UserService) Profile(ctx context.Context, id int64) (*UserProfile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	associations, err := s.userLanguages.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list user languages: %w", err)
	}

	profile := &UserProfile{User: user}
	for _, ul := range associations {
		lang, err := s.languages.GetByID(ctx, ul.LanguageID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve language %d: %w", ul.LanguageID, err)
		}
		if ul.IsNative {
			profile.Native = lang
		} else {
			profile.Learning = append(profile.Learning, lang)
		}
	}
	return profile, nil
}
