package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguary/lingua-api/internal/mocks"
	"github.com/linguary/lingua-api/internal/service/auth"
)

func authTestHandler(t *testing.T) (http.Handler, *int64) {
	t.Helper()
	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})
	return next, &seenUserID
}

func TestAuthenticate(t *testing.T) {
	t.Run("passes a valid bearer token through", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 42, TokenType: "access"}}
		next, seenUserID := authTestHandler(t)
		handler := NewAuthMiddleware(jwtService).Authenticate(next)

		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), *seenUserID)
	})

	t.Run("rejects requests without a header", func(t *testing.T) {
		handler := NewAuthMiddleware(&mocks.MockJWTService{}).Authenticate(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		handler := NewAuthMiddleware(&mocks.MockJWTService{}).Authenticate(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run")
			}))

		for _, header := range []string{"valid-token", "Basic dXNlcjpwYXNz", "Bearer"} {
			req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		}
	})

	t.Run("maps token errors to 401", func(t *testing.T) {
		tests := []struct {
			name    string
			err     error
			message string
		}{
			{"expired token", auth.ErrExpiredToken, "Token expired"},
			{"invalid token", auth.ErrInvalidToken, "Invalid token"},
			{"refresh token used as access token", auth.ErrWrongTokenType, "Invalid token"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				jwtService := &mocks.MockJWTService{ValidateErr: tt.err}
				handler := NewAuthMiddleware(jwtService).Authenticate(
					http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						t.Fatal("next handler must not run")
					}))

				req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
				req.Header.Set("Authorization", "Bearer some-token")
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Contains(t, w.Body.String(), tt.message)
			})
		}
	})

	t.Run("returns 500 for unexpected validation failures", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, context.DeadlineExceeded
			},
		}
		handler := NewAuthMiddleware(jwtService).Authenticate(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
