package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguary/lingua-api/internal/config"
	"github.com/linguary/lingua-api/internal/domain"
)

const testSecret = "test-secret-thats-at-least-32-characters-long"

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("learner@example.com", "hash", "Ada", "Lovelace", domain.RoleLearner)
	require.NoError(t, err)
	return user.WithID(42)
}

func TestNewJWTService(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg := testConfig()
	cfg.JWTSecret = "too-short"
	svc, err = NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	user := testUser(t)

	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "learner@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	token, err := svc.GenerateRefreshToken(ctx, testUser(t))
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	user := testUser(t)

	access, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "another-secret-thats-also-32-characters-long"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, testUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	ctx := context.Background()
	user := testUser(t)
	issuedAt := time.Now()

	svc := &hmacJWTService{
		signingKey:           []byte(testSecret),
		tokenLifetime:        time.Hour,
		refreshTokenLifetime: 24 * time.Hour,
		timeFunc:             func() time.Time { return issuedAt },
		clockSkew:            2 * time.Minute,
	}

	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, user)
	require.NoError(t, err)

	// Still valid just before expiry.
	svc.timeFunc = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Expired past the lifetime plus clock skew.
	svc.timeFunc = func() time.Time { return issuedAt.Add(time.Hour + 3*time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	svc.timeFunc = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestTokenClockSkew(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Now()

	svc := &hmacJWTService{
		signingKey:    []byte(testSecret),
		tokenLifetime: time.Hour,
		timeFunc:      func() time.Time { return issuedAt },
		clockSkew:     2 * time.Minute,
	}

	token, err := svc.GenerateToken(ctx, testUser(t))
	require.NoError(t, err)

	// A validator running slightly behind the issuer stays within the
	// allowed drift.
	svc.timeFunc = func() time.Time { return issuedAt.Add(time.Hour + time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}
