package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/service/auth"
	"github.com/linguary/lingua-api/internal/store"
)

// AuthService handles credential and OAuth logins and issues tokens.
type AuthService struct {
	users       store.UserStore
	passwords   auth.PasswordVerifier
	tokens      auth.JWTService
	defaultRole domain.Role
	logger      *slog.Logger
}

// NewAuthService creates an AuthService. defaultRole is assigned to users
// provisioned through OAuth login.
func NewAuthService(
	users store.UserStore,
	passwords auth.PasswordVerifier,
	tokens auth.JWTService,
	defaultRole domain.Role,
	logger *slog.Logger,
) (*AuthService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if passwords == nil {
		return nil, errors.New("password verifier cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if defaultRole == "" {
		return nil, errors.New("default role cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &AuthService{
		users:       users,
		passwords:   passwords,
		tokens:      tokens,
		defaultRole: defaultRole,
		logger:      logger.With(slog.String("component", "auth_service")),
	}, nil
}

// LoginResult carries the issued tokens and the authenticated user.
type LoginResult struct {
	Token        string
	RefreshToken string
	User         *domain.User
}

// OAuthLoginResult is a LoginResult that also reports whether the login
// provisioned a new account.
type OAuthLoginResult struct {
	LoginResult
	IsNewUser bool
}

// OAuthAssertion is the verified identity returned by an OAuth provider.
type OAuthAssertion struct {
	Provider  string
	Email     string
	FirstName string
	LastName  string
}

// Login authenticates a user by email and password. Every failure mode
// (unknown email, inactive account, wrong password) returns the same
// invalid-credentials error so the response does not reveal which check
// failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login failed: unknown email", slog.String("email", email))
			return nil, &domain.InvalidCredentialsError{Email: email}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !user.IsActive() {
		s.logger.WarnContext(ctx, "login failed: account not active",
			slog.Int64("user_id", user.ID),
			slog.String("status", string(user.Status)))
		return nil, &domain.InvalidCredentialsError{Email: email}
	}
	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		s.logger.WarnContext(ctx, "login failed: password mismatch", slog.Int64("user_id", user.ID))
		return nil, &domain.InvalidCredentialsError{Email: email}
	}

	result, err := s.IssueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return result, nil
}

// LoginWithOAuth logs in the identity asserted by an OAuth provider,
// provisioning an account on first login. Provisioned accounts get the
// default role and a random placeholder password that can never be used
// for a credential login.
func (s *AuthService) LoginWithOAuth(ctx context.Context, assertion OAuthAssertion) (*OAuthLoginResult, error) {
	user, err := s.users.GetByEmail(ctx, assertion.Email)
	switch {
	case err == nil:
		if user.FirstName != assertion.FirstName || user.LastName != assertion.LastName {
			updated, err := s.users.Update(ctx, user.WithName(assertion.FirstName, assertion.LastName))
			if err != nil {
				return nil, fmt.Errorf("failed to sync user name: %w", err)
			}
			user = updated
		}
		result, err := s.IssueTokens(ctx, user)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "oauth login",
			slog.Int64("user_id", user.ID),
			slog.String("provider", assertion.Provider))
		return &OAuthLoginResult{LoginResult: *result}, nil

	case errors.Is(err, store.ErrUserNotFound):
		created, err := s.provisionOAuthUser(ctx, assertion)
		if err != nil {
			return nil, err
		}
		result, err := s.IssueTokens(ctx, created)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "oauth login provisioned new user",
			slog.Int64("user_id", created.ID),
			slog.String("provider", assertion.Provider))
		return &OAuthLoginResult{LoginResult: *result, IsNewUser: true}, nil

	default:
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
}

func (s *AuthService) provisionOAuthUser(ctx context.Context, assertion OAuthAssertion) (*domain.User, error) {
	// The placeholder is a hash of a random value that is immediately
	// discarded, so no password will ever compare against it.
	placeholder, err := s.passwords.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	user, err := domain.NewUser(assertion.Email, placeholder, assertion.FirstName, assertion.LastName, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return created, nil
}

// IssueTokens generates an access and refresh token pair for the user.
func (s *AuthService) IssueTokens(ctx context.Context, user *domain.User) (*LoginResult, error) {
	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &LoginResult{Token: token, RefreshToken: refreshToken, User: user}, nil
}

// RefreshTokens validates a refresh token and issues a fresh token pair
// for the user it names. The user must still exist and be active.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive() {
		s.logger.WarnContext(ctx, "refresh rejected: account not active", slog.Int64("user_id", user.ID))
		return nil, auth.ErrInvalidRefreshToken
	}
	return s.IssueTokens(ctx, user)
}
