package backend

import (
	"time"

	"github.com/jrsteele09/recipe-box/users"
)

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignupResponse struct {
	User                      users.User `json:"user"`
	RequiresEmailVerification bool       `json:"requiresEmailVerification"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse either carries a user or, when a second factor is needed, a temp token.
type LoginResponse struct {
	User               *users.User `json:"user,omitempty"`
	RequiresTwoFactor  bool        `json:"requiresTwoFactor"`
	TempToken          string      `json:"tempToken,omitempty"`
	TempTokenExpiresAt *time.Time  `json:"tempTokenExpiresAt,omitempty"`
}

type UserResponse struct {
	User users.User `json:"user"`
}

type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

type TwoFactorToggleResponse struct {
	Enabled     bool     `json:"enabled"`
	QRCode      string   `json:"qrCode,omitempty"`
	BackupCodes []string `json:"backupCodes,omitempty"`
}

type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
