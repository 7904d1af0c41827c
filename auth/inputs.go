package auth

import (
	"strings"
)

type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

type VerifyTwoFactorInput struct {
	Code      string `json:"code"`
	TempToken string `json:"tempToken"`
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type VerifyEmailInput struct {
	Code string `json:"code"`
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

type ToggleTwoFactorInput struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Password string `json:"password"`
}

type DeleteAccountInput struct {
	Password string `json:"password"`
}

type OAuthCallbackInput struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	State    string `json:"state"`
}

// normalizeEmail trims and lower-cases an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in *SignupInput) normalize() {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

func (in *LoginInput) normalize() {
	in.Email = normalizeEmail(in.Email)
}

func (in *VerifyTwoFactorInput) normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.TempToken = strings.TrimSpace(in.TempToken)
}

func (in *ForgotPasswordInput) normalize() {
	in.Email = normalizeEmail(in.Email)
}

func (in *ResetPasswordInput) normalize() {
	in.Token = strings.TrimSpace(in.Token)
}

func (in *VerifyEmailInput) normalize() {
	in.Code = strings.TrimSpace(in.Code)
}

func (in *UpdateProfileInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.ReplaceAll(strings.TrimSpace(in.Phone), " ", "")
	in.Bio = strings.TrimSpace(in.Bio)
}

func (in *OAuthCallbackInput) normalize() {
	in.Provider = strings.ToLower(strings.TrimSpace(in.Provider))
	in.Code = strings.TrimSpace(in.Code)
}
