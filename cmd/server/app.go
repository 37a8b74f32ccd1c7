package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linguary/lingua-api/internal/api"
	"github.com/linguary/lingua-api/internal/config"
	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/platform/oauth"
	"github.com/linguary/lingua-api/internal/platform/postgres"
	"github.com/linguary/lingua-api/internal/service"
	"github.com/linguary/lingua-api/internal/service/auth"
)

// application holds the shared dependencies of the server: configuration,
// logger, database handle, and the wired services.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	authService         *service.AuthService
	userService         *service.UserService
	languageService     *service.LanguageService
	userLanguageService *service.UserLanguageService

	oauthProvider api.OAuthProvider
}

// newApplication connects to the database, runs migrations, and wires the
// stores, services, and handlers together.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}
	passwordVerifier := auth.NewBcryptVerifier()

	users := postgres.NewPostgresUserStore(db, logger)
	languages := postgres.NewPostgresLanguageStore(db, logger)
	userLanguages := postgres.NewPostgresUserLanguageStore(db, logger)

	authService, err := service.NewAuthService(
		users, passwordVerifier, jwtService, domain.Role(cfg.Auth.DefaultRole), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	userService, err := service.NewUserService(users, languages, userLanguages, passwordVerifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	languageService, err := service.NewLanguageService(languages, cfg.Catalog.StartingLanguageIDs, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create language service: %w", err)
	}

	userLanguageService, err := service.NewUserLanguageService(users, languages, userLanguages, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user language service: %w", err)
	}

	var provider api.OAuthProvider
	if cfg.OAuth.GoogleClientID != "" {
		provider = oauth.NewGoogleProvider(
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			cfg.OAuth.CallbackURL,
		)
		logger.Info("oauth provider configured", slog.String("provider", "google"))
	} else {
		logger.Info("oauth provider not configured; oauth login disabled")
	}

	return &application{
		config:              cfg,
		logger:              logger,
		db:                  db,
		jwtService:          jwtService,
		authService:         authService,
		userService:         userService,
		languageService:     languageService,
		userLanguageService: userLanguageService,
		oauthProvider:       provider,
	}, nil
}

// run starts the HTTP server and blocks until shutdown.
func (app *application) run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases the application's resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
