package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/mocks"
	"github.com/linguary/lingua-api/internal/service"
)

// newUserLanguageRouter mounts a UserLanguageHandler the way the server
// router does, seeded with one user (ID 1) and two languages (IDs 1-2).
func newUserLanguageRouter(t *testing.T) http.Handler {
	t.Helper()

	users := mocks.NewMockUserStore()
	user, err := domain.NewUser("learner@example.com", "hash", "Ada", "Lovelace", domain.RoleLearner)
	require.NoError(t, err)
	_, err = users.Create(context.Background(), user)
	require.NoError(t, err)

	spanish, err := domain.NewLanguage("Spanish", "es", "")
	require.NoError(t, err)
	french, err := domain.NewLanguage("French", "fr", "")
	require.NoError(t, err)
	languages := mocks.NewMockLanguageStore().Seed(spanish.WithID(1), french.WithID(2))

	svc, err := service.NewUserLanguageService(users, languages, mocks.NewMockUserLanguageStore(), nil, slog.Default())
	require.NoError(t, err)
	handler := NewUserLanguageHandler(svc)

	r := chi.NewRouter()
	r.Route("/users/{id}/languages", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Add)
		r.Get("/native", handler.GetNative)
		r.Get("/learning", handler.ListLearning)
		r.Patch("/{languageId}/native", handler.SetNative)
		r.Delete("/{languageId}", handler.Remove)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestUserLanguageHandlerAdd(t *testing.T) {
	t.Run("adds a language with 201", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp UserLanguageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.LanguageID)
		assert.False(t, resp.IsNative)
	})

	t.Run("returns 409 for a duplicate", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns 404 for an unknown user", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/99/languages", AddLanguageRequest{LanguageID: 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 404 for an unknown language", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 99})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a non-positive language id", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 400 for a malformed user id", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/abc/languages", AddLanguageRequest{LanguageID: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserLanguageHandlerSetNative(t *testing.T) {
	t.Run("promotes an added language", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(t, router, http.MethodPatch, "/users/1/languages/1/native", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserLanguageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsNative)
	})

	t.Run("returns 404 for a language the user never added", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPatch, "/users/1/languages/2/native", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserLanguageHandlerRemove(t *testing.T) {
	t.Run("removes a learning language with 204", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(t, router, http.MethodDelete, "/users/1/languages/1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("is idempotent with 204 for an absent association", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodDelete, "/users/1/languages/1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("returns 409 for the native language", func(t *testing.T) {
		router := newUserLanguageRouter(t)

		w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
		require.Equal(t, http.StatusCreated, w.Code)
		w = doRequest(t, router, http.MethodPatch, "/users/1/languages/1/native", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodDelete, "/users/1/languages/1", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUserLanguageHandlerReads(t *testing.T) {
	router := newUserLanguageRouter(t)

	w := doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(t, router, http.MethodPost, "/users/1/languages", AddLanguageRequest{LanguageID: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(t, router, http.MethodPatch, "/users/1/languages/1/native", nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("lists all associations", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/users/1/languages", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp []UserLanguageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("returns the native association", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/users/1/languages/native", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserLanguageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.LanguageID)
	})

	t.Run("lists learning associations", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/users/1/languages/learning", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp []UserLanguageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(2), resp[0].LanguageID)
	})
}

func TestUserLanguageHandlerGetNativeAbsent(t *testing.T) {
	router := newUserLanguageRouter(t)

	w := doRequest(t, router, http.MethodGet, "/users/1/languages/native", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
