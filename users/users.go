package users

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// RoleType represents the application role of a user
type RoleType string

const (
	RoleUser      RoleType = "user"
	RoleAdmin     RoleType = "admin"
	RoleModerator RoleType = "moderator"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

// SessionUser is the point-in-time projection of a user carried inside a session token.
// It is only as fresh as the moment the session was minted.
type SessionUser struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Role             RoleType `json:"role"`
	EmailVerified    bool     `json:"emailVerified"`
	TwoFactorEnabled bool     `json:"twoFactorEnabled"`
}

// User is the full account record as returned by the identity API.
type User struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Role             RoleType `json:"role"`
	EmailVerified    bool     `json:"emailVerified"`
	TwoFactorEnabled bool     `json:"twoFactorEnabled"`
	Phone            string   `json:"phone,omitempty"`
	Bio              string   `json:"bio,omitempty"`
}

// ToSessionUser drops the profile-only fields.
func (u User) ToSessionUser() SessionUser {
	return SessionUser{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             u.Role,
		EmailVerified:    u.EmailVerified,
		TwoFactorEnabled: u.TwoFactorEnabled,
	}
}

func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u SessionUser) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// ValidatePasswordStrength checks if password meets security requirements:
// - Between 8 and 100 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if length > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters long", MaxPasswordLength)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
