package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linguary/lingua-api/internal/api"
	apiMiddleware "github.com/linguary/lingua-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService, app.userService, app.oauthProvider)
	userHandler := api.NewUserHandler(app.userService)
	languageHandler := api.NewLanguageHandler(app.languageService)
	userLanguageHandler := api.NewUserLanguageHandler(app.userLanguageService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/oauth", authHandler.OAuthLogin)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Language catalog (public, read-only)
		r.Route("/languages", func(r chi.Router) {
			r.Get("/", languageHandler.List)
			r.Get("/search", languageHandler.Search)
			r.Get("/starting", languageHandler.Starting)
			r.Get("/code/{code}", languageHandler.GetByCode)
			r.Get("/{id}", languageHandler.Get)
		})

		// User management and language profiles (authenticated)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/me", userHandler.Me)
				r.Get("/email/{email}", userHandler.GetByEmail)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)
					r.Delete("/", userHandler.Delete)
					r.Get("/profile", userHandler.Profile)
					r.Patch("/activate", userHandler.Activate)
					r.Patch("/deactivate", userHandler.Deactivate)
					r.Patch("/password", userHandler.ChangePassword)
					r.Patch("/email", userHandler.ChangeEmail)

					r.Route("/languages", func(r chi.Router) {
						r.Get("/", userLanguageHandler.List)
						r.Post("/", userLanguageHandler.Add)
						r.Get("/native", userLanguageHandler.GetNative)
						r.Get("/learning", userLanguageHandler.ListLearning)
						r.Patch("/{languageId}/native", userLanguageHandler.SetNative)
						r.Delete("/{languageId}", userLanguageHandler.Remove)
					})
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
