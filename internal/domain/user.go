package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrEmptyRoles          = errors.New("user must have at least one role")
	ErrInvalidUserStatus   = errors.New("invalid user status")
)

// Password length limits enforced when registering or changing a password.
// The upper bound is bcrypt's 72-byte input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
)

// ValidatePassword checks a plaintext password against the length limits.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// emailPattern is a deliberately loose check: something before an @ and
// something after it. Full RFC 5322 validation is the transport layer's job.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// Role is a coarse permission group assigned to a user.
type Role string

const (
	RoleLearner Role = "LEARNER"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusPending   UserStatus = "PENDING"
)

// User represents a registered account. Mutations are modeled as copy-on-write:
// the With*/Activated/Deactivated methods return a modified copy with a bumped
// UpdatedAt and leave the receiver untouched.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // never expose the hash
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	AvatarSeed     string     `json:"avatar_seed"` // assigned once at creation, never changed
	Roles          []Role     `json:"roles"`
	Status         UserStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates an active User with a fresh avatar seed and the given role.
// The password must already be hashed; the domain never sees plaintext.
// The ID is zero until the store assigns one.
func NewUser(email, hashedPassword, firstName, lastName string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:          email,
		HashedPassword: hashedPassword,
		FirstName:      firstName,
		LastName:       lastName,
		AvatarSeed:     uuid.NewString(),
		Roles:          []Role{role},
		Status:         UserStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the user's fields against the domain invariants.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if len(u.Roles) == 0 {
		return ErrEmptyRoles
	}
	switch u.Status {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended, UserStatusPending:
	default:
		return ErrInvalidUserStatus
	}
	return nil
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// FullName returns the display name for profile summaries.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// clone returns a shallow copy with its own roles slice, so copy-on-write
// updates never alias the receiver.
func (u *User) clone() *User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}

// WithName returns a copy with updated first/last name.
func (u *User) WithName(firstName, lastName string) *User {
	c := u.clone()
	c.FirstName = firstName
	c.LastName = lastName
	c.UpdatedAt = time.Now().UTC()
	return c
}

// WithRoles returns a copy with the given role set.
func (u *User) WithRoles(roles []Role) *User {
	c := u.clone()
	c.Roles = slices.Clone(roles)
	c.UpdatedAt = time.Now().UTC()
	return c
}

// WithHashedPassword returns a copy with a new password hash.
func (u *User) WithHashedPassword(hashedPassword string) *User {
	c := u.clone()
	c.HashedPassword = hashedPassword
	c.UpdatedAt = time.Now().UTC()
	return c
}

// WithEmail returns a copy with a new email address.
func (u *User) WithEmail(email string) *User {
	c := u.clone()
	c.Email = email
	c.UpdatedAt = time.Now().UTC()
	return c
}

// WithID returns a copy carrying the store-assigned id.
func (u *User) WithID(id int64) *User {
	c := u.clone()
	c.ID = id
	return c
}

// Activated returns a copy with status ACTIVE.
func (u *User) Activated() *User {
	c := u.clone()
	c.Status = UserStatusActive
	c.UpdatedAt = time.Now().UTC()
	return c
}

// Deactivated returns a copy with status INACTIVE.
func (u *User) Deactivated() *User {
	c := u.clone()
	c.Status = UserStatusInactive
	c.UpdatedAt = time.Now().UTC()
	return c
}
