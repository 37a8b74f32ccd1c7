package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings. DefaultRole is the role
// assigned to accounts created by registration or first OAuth login; it is
// configuration rather than a constant so deployments can choose their own
// starting role.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"        validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	DefaultRole                 string `mapstructure:"default_role"                  validate:"required"`
}

// OAuthConfig contains the Google OAuth client settings. All fields are
// optional: when unset the OAuth callback endpoints are simply not wired.
type OAuthConfig struct {
	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	CallbackURL        string `mapstructure:"callback_url"`
}

// CatalogConfig contains catalog presentation settings. StartingLanguageIDs
// is the ordered list of languages recommended to new users.
type CatalogConfig struct {
	StartingLanguageIDs []int64 `mapstructure:"starting_language_ids"`
}
