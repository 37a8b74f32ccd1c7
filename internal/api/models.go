package api

import (
	"time"

	"github.com/linguary/lingua-api/internal/domain"
	"github.com/linguary/lingua-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// OAuthLoginRequest defines the payload for the OAuth login endpoint.
// The code is the authorization code returned by the provider's redirect.
type OAuthLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       int64  `json:"user_id"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`

	// IsNewUser is set on OAuth logins that provisioned an account.
	IsNewUser bool `json:"is_new_user,omitempty"`
}

// UpdateUserRequest defines the payload for the user update endpoint.
// Email, password, and status have dedicated endpoints.
type UpdateUserRequest struct {
	FirstName string        `json:"first_name" validate:"required"`
	LastName  string        `json:"last_name"  validate:"required"`
	Roles     []domain.Role `json:"roles,omitempty" validate:"omitempty,dive,oneof=LEARNER TUTOR ADMIN"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// ChangeEmailRequest defines the payload for the email change endpoint.
type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddLanguageRequest defines the payload for adding a language to a user.
type AddLanguageRequest struct {
	LanguageID int64 `json:"language_id" validate:"required,gt=0"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID         int64         `json:"id"`
	Email      string        `json:"email"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	FullName   string        `json:"full_name"`
	AvatarSeed string        `json:"avatar_seed"`
	Roles      []domain.Role `json:"roles"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		AvatarSeed: u.AvatarSeed,
		Roles:      u.Roles,
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// LanguageResponse is the public projection of a catalog language.
type LanguageResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	FlagURL string `json:"flag_url,omitempty"`
}

// NewLanguageResponse builds a LanguageResponse from a domain language.
func NewLanguageResponse(l *domain.Language) LanguageResponse {
	return LanguageResponse{
		ID:      l.ID,
		Name:    l.Name,
		Code:    l.Code,
		FlagURL: l.FlagURL,
	}
}

// NewLanguageListResponse builds responses for a catalog listing.
func NewLanguageListResponse(langs []*domain.Language) []LanguageResponse {
	out := make([]LanguageResponse, len(langs))
	for i, l := range langs {
		out[i] = NewLanguageResponse(l)
	}
	return out
}

// UserLanguageResponse is the public projection of a user-language
// association.
type UserLanguageResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	LanguageID int64     `json:"language_id"`
	IsNative   bool      `json:"is_native"`
	AddedAt    time.Time `json:"added_at"`
}

// NewUserLanguageResponse builds a UserLanguageResponse from a domain
// association.
func NewUserLanguageResponse(ul *domain.UserLanguage) UserLanguageResponse {
	return UserLanguageResponse{
		ID:         ul.ID,
		UserID:     ul.UserID,
		LanguageID: ul.LanguageID,
		IsNative:   ul.IsNative,
		AddedAt:    ul.AddedAt,
	}
}

// NewUserLanguageListResponse builds responses for an association listing.
func NewUserLanguageListResponse(uls []*domain.UserLanguage) []UserLanguageResponse {
	out := make([]UserLanguageResponse, len(uls))
	for i, ul := range uls {
		out[i] = NewUserLanguageResponse(ul)
	}
	return out
}

// ProfileResponse is a user together with their resolved languages.
type ProfileResponse struct {
	User     UserResponse       `json:"user"`
	Native   *LanguageResponse  `json:"native_language,omitempty"`
	Learning []LanguageResponse `json:"learning_languages"`
}

func newProfileResponse(p *service.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		User:     NewUserResponse(p.User),
		Learning: NewLanguageListResponse(p.Learning),
	}
	if p.Native != nil {
		native := NewLanguageResponse(p.Native)
		resp.Native = &native
	}
	return resp
}
