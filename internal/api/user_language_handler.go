package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linguary/lingua-api/internal/api/shared"
	"github.com/linguary/lingua-api/internal/service"
)

// UserLanguageHandler handles the user-language association API requests.
type UserLanguageHandler struct {
	userLanguageService *service.UserLanguageService
	validator           *validator.Validate
}

// NewUserLanguageHandler creates a new UserLanguageHandler with the given
// dependencies.
func NewUserLanguageHandler(userLanguageService *service.UserLanguageService) *UserLanguageHandler {
	return &UserLanguageHandler{
		userLanguageService: userLanguageService,
		validator:           validator.New(),
	}
}

// List handles GET /users/{id}/languages.
func (h *UserLanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	uls, err := h.userLanguageService.GetUserLanguages(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserLanguageListResponse(uls))
}

// GetNative handles GET /users/{id}/languages/native. A user without
// a native language gets 204, not an error.
func (h *UserLanguageHandler) GetNative(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	ul, err := h.userLanguageService.GetNativeLanguage(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if ul == nil {
		shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserLanguageResponse(ul))
}

// ListLearning handles GET /users/{id}/languages/learning.
func (h *UserLanguageHandler) ListLearning(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	uls, err := h.userLanguageService.GetLearningLanguages(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserLanguageListResponse(uls))
}

// Add handles POST /users/{id}/languages.
func (h *UserLanguageHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	var req AddLanguageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	ul, err := h.userLanguageService.AddLanguage(r.Context(), userID, req.LanguageID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserLanguageResponse(ul))
}

// SetNative handles PATCH /users/{id}/languages/{languageId}/native.
func (h *UserLanguageHandler) SetNative(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	languageID, ok := requirePathID(w, r, "languageId")
	if !ok {
		return
	}

	ul, err := h.userLanguageService.SetNativeLanguage(r.Context(), userID, languageID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserLanguageResponse(ul))
}

// Remove handles DELETE /users/{id}/languages/{languageId}. Removal
// of an association that does not exist succeeds with 204.
func (h *UserLanguageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	languageID, ok := requirePathID(w, r, "languageId")
	if !ok {
		return
	}

	if err := h.userLanguageService.RemoveLanguage(r.Context(), userID, languageID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
