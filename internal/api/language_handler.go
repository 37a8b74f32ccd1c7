package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linguary/lingua-api/internal/api/shared"
	"github.com/linguary/lingua-api/internal/service"
)

// LanguageHandler handles language catalog API requests. The catalog is
// read-only, so every endpoint is a lookup.
type LanguageHandler struct {
	languageService *service.LanguageService
}

// NewLanguageHandler creates a new LanguageHandler with the given dependencies.
func NewLanguageHandler(languageService *service.LanguageService) *LanguageHandler {
	return &LanguageHandler{languageService: languageService}
}

// List handles GET /languages.
func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languageService.All(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewLanguageListResponse(langs))
}

// Get handles GET /languages/{id}.
func (h *LanguageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}
	lang, err := h.languageService.ByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewLanguageResponse(lang))
}

// GetByCode handles GET /languages/code/{code}.
func (h *LanguageHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "code is required")
		return
	}
	lang, err := h.languageService.ByCode(r.Context(), code)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewLanguageResponse(lang))
}

// Search handles GET /languages/search?q=.
func (h *LanguageHandler) Search(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languageService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewLanguageListResponse(langs))
}

// Starting handles GET /languages/starting.
func (h *LanguageHandler) Starting(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languageService.StartingLanguages(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewLanguageListResponse(langs))
}
