package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linguary/lingua-api/internal/api/shared"
	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/service"
)

// UserHandler handles user management API requests.
type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// GetByEmail handles GET /users/email/{email}.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "email is required")
		return
	}
	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Me handles GET /users/me, returning the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	profile, err := h.userService.Profile(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newProfileResponse(profile))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Update(r.Context(), id, req.FirstName, req.LastName, req.Roles)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// Activate handles PATCH /users/{id}/activate.
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.userService.Activate)
}

// Deactivate handles PATCH /users/{id}/deactivate.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.userService.Deactivate)
}

func (h *UserHandler) setStatus(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, id int64) (*domain.User, error),
) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	user, err := transition(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// ChangePassword handles PATCH /users/{id}/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.userService.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// ChangeEmail handles PATCH /users/{id}/email.
func (h *UserHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	var req ChangeEmailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.ChangeEmail(r.Context(), id, req.Email)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Profile handles GET /users/{id}/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	profile, err := h.userService.Profile(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProfileResponse(profile))
}
