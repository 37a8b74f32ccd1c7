package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/mocks"
	"github.com/linguary/lingua-api/internal/platform/oauth"
	"github.com/linguary/lingua-api/internal/service"
	"github.com/linguary/lingua-api/internal/service/auth"
)

// fakeProvider implements OAuthProvider for handler tests.
type fakeProvider struct {
	info *oauth.UserInfo
	err  error
}

func (p *fakeProvider) Name() string { return "google" }

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*oauth.UserInfo, error) {
	return p.info, p.err
}

func newAuthHandlerFixture(t *testing.T, provider OAuthProvider) (*AuthHandler, *mocks.MockUserStore, *mocks.MockJWTService) {
	t.Helper()

	users := mocks.NewMockUserStore()
	languages := mocks.NewMockLanguageStore()
	userLanguages := mocks.NewMockUserLanguageStore()
	passwords := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	tokens := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}

	authService, err := service.NewAuthService(users, passwords, tokens, domain.RoleLearner, slog.Default())
	require.NoError(t, err)
	userService, err := service.NewUserService(users, languages, userLanguages, passwords, slog.Default())
	require.NoError(t, err)

	return NewAuthHandler(authService, userService, provider), users, tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("creates a user and returns tokens", func(t *testing.T) {
		handler, users, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.Register, "/api/v1/auth/register", RegisterRequest{
			Email:     "learner@example.com",
			Password:  "supersecret",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.NotZero(t, resp.UserID)
		assert.NotNil(t, users.Users["learner@example.com"])
	})

	t.Run("rejects an invalid payload", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.Register, "/api/v1/auth/register", RegisterRequest{
			Email:     "not-an-email",
			Password:  "supersecret",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.Register, "/api/v1/auth/register", RegisterRequest{
			Email:     "learner@example.com",
			Password:  "short",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a duplicate email with 409", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)
		req := RegisterRequest{
			Email:     "learner@example.com",
			Password:  "supersecret",
			FirstName: "Ada",
			LastName:  "Lovelace",
		}

		w := postJSON(t, handler.Register, "/api/v1/auth/register", req)
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, handler.Register, "/api/v1/auth/register", req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	register := func(t *testing.T, handler *AuthHandler) {
		w := postJSON(t, handler.Register, "/api/v1/auth/register", RegisterRequest{
			Email:     "learner@example.com",
			Password:  "supersecret",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("returns tokens for valid credentials", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)
		register(t, handler)

		w := postJSON(t, handler.Login, "/api/v1/auth/login", LoginRequest{
			Email:    "learner@example.com",
			Password: "supersecret",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
	})

	t.Run("returns 401 for an unknown account", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.Login, "/api/v1/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "supersecret",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}

func TestAuthHandlerOAuthLogin(t *testing.T) {
	info := &oauth.UserInfo{
		Subject:       "google-sub",
		Email:         "learner@example.com",
		VerifiedEmail: true,
		FirstName:     "Ada",
		LastName:      "Lovelace",
	}

	t.Run("returns 501 when no provider is configured", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.OAuthLogin, "/api/v1/auth/oauth", OAuthLoginRequest{Code: "auth-code"})
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("provisions a new account with 201", func(t *testing.T) {
		handler, users, _ := newAuthHandlerFixture(t, &fakeProvider{info: info})

		w := postJSON(t, handler.OAuthLogin, "/api/v1/auth/oauth", OAuthLoginRequest{Code: "auth-code"})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsNewUser)
		assert.NotNil(t, users.Users["learner@example.com"])
	})

	t.Run("logs in an existing account with 200", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, &fakeProvider{info: info})

		w := postJSON(t, handler.OAuthLogin, "/api/v1/auth/oauth", OAuthLoginRequest{Code: "auth-code"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, handler.OAuthLogin, "/api/v1/auth/oauth", OAuthLoginRequest{Code: "auth-code"})
		assert.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsNewUser)
	})

	t.Run("returns 401 when the code exchange fails", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, &fakeProvider{err: errors.New("invalid_grant")})

		w := postJSON(t, handler.OAuthLogin, "/api/v1/auth/oauth", OAuthLoginRequest{Code: "bad-code"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	t.Run("rejects a missing refresh token", func(t *testing.T) {
		handler, _, _ := newAuthHandlerFixture(t, nil)

		w := postJSON(t, handler.Refresh, "/api/v1/auth/refresh", RefreshTokenRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 401 for an invalid refresh token", func(t *testing.T) {
		handler, _, tokens := newAuthHandlerFixture(t, nil)
		tokens.ValidateErr = auth.ErrInvalidRefreshToken

		w := postJSON(t, handler.Refresh, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
