package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/mocks"
	"github.com/linguary/lingua-api/internal/service/auth"
	"github.com/linguary/lingua-api/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, *mocks.MockUserStore, *mocks.MockPasswordVerifier, *mocks.MockJWTService) {
	t.Helper()

	users := mocks.NewMockUserStore()
	passwords := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	tokens := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}

	svc, err := NewAuthService(users, passwords, tokens, domain.RoleLearner, slog.Default())
	require.NoError(t, err)
	return svc, users, passwords, tokens
}

func seedUser(t *testing.T, users *mocks.MockUserStore, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "hashed:secret", "Ada", "Lovelace", domain.RoleLearner)
	require.NoError(t, err)
	created, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestNewAuthService(t *testing.T) {
	users := mocks.NewMockUserStore()
	passwords := &mocks.MockPasswordVerifier{}
	tokens := &mocks.MockJWTService{}

	tests := []struct {
		name        string
		users       store.UserStore
		passwords   auth.PasswordVerifier
		tokens      auth.JWTService
		defaultRole domain.Role
		logger      *slog.Logger
		errorMsg    string
	}{
		{
			name:        "valid dependencies",
			users:       users,
			passwords:   passwords,
			tokens:      tokens,
			defaultRole: domain.RoleLearner,
			logger:      slog.Default(),
		},
		{
			name:        "nil user store",
			passwords:   passwords,
			tokens:      tokens,
			defaultRole: domain.RoleLearner,
			logger:      slog.Default(),
			errorMsg:    "user store cannot be nil",
		},
		{
			name:        "nil password verifier",
			users:       users,
			tokens:      tokens,
			defaultRole: domain.RoleLearner,
			logger:      slog.Default(),
			errorMsg:    "password verifier cannot be nil",
		},
		{
			name:        "nil jwt service",
			users:       users,
			passwords:   passwords,
			defaultRole: domain.RoleLearner,
			logger:      slog.Default(),
			errorMsg:    "jwt service cannot be nil",
		},
		{
			name:      "empty default role",
			users:     users,
			passwords: passwords,
			tokens:    tokens,
			logger:    slog.Default(),
			errorMsg:  "default role cannot be empty",
		},
		{
			name:        "nil logger",
			users:       users,
			passwords:   passwords,
			tokens:      tokens,
			defaultRole: domain.RoleLearner,
			errorMsg:    "logger cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAuthService(tt.users, tt.passwords, tt.tokens, tt.defaultRole, tt.logger)
			if tt.errorMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		svc, users, passwords, _ := newAuthFixture(t)
		user := seedUser(t, users, "learner@example.com")

		result, err := svc.Login(ctx, "learner@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "access-token", result.Token)
		assert.Equal(t, "refresh-token", result.RefreshToken)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, user.HashedPassword, passwords.CompareCalledWith.HashedPassword)
		assert.Equal(t, "secret", passwords.CompareCalledWith.Password)
	})

	t.Run("returns the same error for every failure mode", func(t *testing.T) {
		tests := []struct {
			name  string
			setup func(t *testing.T, users *mocks.MockUserStore, passwords *mocks.MockPasswordVerifier)
			email string
		}{
			{
				name:  "unknown email",
				setup: func(t *testing.T, users *mocks.MockUserStore, passwords *mocks.MockPasswordVerifier) {},
				email: "nobody@example.com",
			},
			{
				name: "inactive account",
				setup: func(t *testing.T, users *mocks.MockUserStore, passwords *mocks.MockPasswordVerifier) {
					user := seedUser(t, users, "learner@example.com")
					users.Users[user.Email] = user.Deactivated()
				},
				email: "learner@example.com",
			},
			{
				name: "wrong password",
				setup: func(t *testing.T, users *mocks.MockUserStore, passwords *mocks.MockPasswordVerifier) {
					seedUser(t, users, "learner@example.com")
					passwords.ShouldSucceed = false
				},
				email: "learner@example.com",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, users, passwords, _ := newAuthFixture(t)
				tt.setup(t, users, passwords)

				result, err := svc.Login(ctx, tt.email, "secret")
				assert.Nil(t, result)
				assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
				assert.Equal(t, "invalid credentials", err.Error(),
					"the message must not reveal which check failed")
			})
		}
	})

	t.Run("does not reach the password check for an inactive account", func(t *testing.T) {
		svc, users, passwords, _ := newAuthFixture(t)
		user := seedUser(t, users, "learner@example.com")
		users.Users[user.Email] = user.Deactivated()

		_, err := svc.Login(ctx, "learner@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Zero(t, passwords.CompareCallCount)
	})
}

func TestLoginWithOAuth(t *testing.T) {
	ctx := context.Background()
	assertion := OAuthAssertion{
		Provider:  "google",
		Email:     "learner@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	t.Run("provisions an account on first login", func(t *testing.T) {
		svc, users, _, _ := newAuthFixture(t)

		result, err := svc.LoginWithOAuth(ctx, assertion)
		require.NoError(t, err)
		assert.True(t, result.IsNewUser)
		assert.Equal(t, "access-token", result.Token)

		created := users.Users["learner@example.com"]
		require.NotNil(t, created)
		assert.Equal(t, "Ada", created.FirstName)
		assert.True(t, created.HasRole(domain.RoleLearner))
		assert.NotEmpty(t, created.HashedPassword, "provisioned accounts get a placeholder hash")
	})

	t.Run("logs in an existing account without provisioning", func(t *testing.T) {
		svc, users, _, _ := newAuthFixture(t)
		existing := seedUser(t, users, "learner@example.com")

		result, err := svc.LoginWithOAuth(ctx, assertion)
		require.NoError(t, err)
		assert.False(t, result.IsNewUser)
		assert.Equal(t, existing.ID, result.User.ID)
	})

	t.Run("syncs a changed name from the provider", func(t *testing.T) {
		svc, users, _, _ := newAuthFixture(t)
		seedUser(t, users, "learner@example.com")

		renamed := assertion
		renamed.FirstName = "Grace"
		renamed.LastName = "Hopper"

		result, err := svc.LoginWithOAuth(ctx, renamed)
		require.NoError(t, err)
		assert.Equal(t, "Grace", result.User.FirstName)
		assert.Equal(t, "Hopper", result.User.LastName)
		assert.Equal(t, "Grace", users.Users["learner@example.com"].FirstName)
	})
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh pair for a valid refresh token", func(t *testing.T) {
		svc, users, _, tokens := newAuthFixture(t)
		user := seedUser(t, users, "learner@example.com")
		tokens.Claims = &auth.Claims{UserID: user.ID}

		result, err := svc.RefreshTokens(ctx, "refresh-token")
		require.NoError(t, err)
		assert.Equal(t, "access-token", result.Token)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects an invalid refresh token", func(t *testing.T) {
		svc, _, _, tokens := newAuthFixture(t)
		tokens.ValidateErr = auth.ErrInvalidToken

		_, err := svc.RefreshTokens(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects a token for a deleted user", func(t *testing.T) {
		svc, _, _, tokens := newAuthFixture(t)
		tokens.Claims = &auth.Claims{UserID: 99}

		_, err := svc.RefreshTokens(ctx, "refresh-token")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("rejects a token for a deactivated user", func(t *testing.T) {
		svc, users, _, tokens := newAuthFixture(t)
		user := seedUser(t, users, "learner@example.com")
		users.Users[user.Email] = user.Deactivated()
		tokens.Claims = &auth.Claims{UserID: user.ID}

		_, err := svc.RefreshTokens(ctx, "refresh-token")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})
}
