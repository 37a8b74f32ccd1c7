package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linguary/lingua-api/internal/api/shared"
	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/platform/oauth"
	"github.com/linguary/lingua-api/internal/service"
)

// OAuthProvider exchanges an authorization code for a verified identity.
type OAuthProvider interface {
	Name() string
	Exchange(ctx context.Context, code string) (*oauth.UserInfo, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	provider    OAuthProvider
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// provider may be nil when OAuth login is not configured; the OAuth
// endpoint then responds 501.
func NewAuthHandler(
	authService *service.AuthService,
	userService *service.UserService,
	provider OAuthProvider,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		provider:    provider,
		validator:   validator.New(),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, domain.RoleLearner)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	result, err := h.authService.IssueTokens(r.Context(), user)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       result.User.ID,
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
	})
}

// OAuthLogin handles POST /auth/oauth: exchanges the authorization code
// with the provider and logs in the asserted identity, provisioning an
// account on first login.
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		shared.RespondWithError(w, r, http.StatusNotImplemented, "OAuth login is not configured")
		return
	}

	var req OAuthLoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	info, err := h.provider.Exchange(r.Context(), req.Code)
	if err != nil {
		slog.Warn("oauth code exchange failed", "error", err, "provider", h.provider.Name())
		shared.RespondWithError(w, r, http.StatusUnauthorized, "OAuth authorization failed")
		return
	}

	result, err := h.authService.LoginWithOAuth(r.Context(), service.OAuthAssertion{
		Provider:  h.provider.Name(),
		Email:     info.Email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.IsNewUser {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       result.User.ID,
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
		IsNewUser:    result.IsNewUser,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       result.User.ID,
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
	})
}
