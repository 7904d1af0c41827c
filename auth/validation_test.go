package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/recipe-box/auth"
)

func TestValidateSignup(t *testing.T) {
	v := auth.NewValidator()

	tests := []struct {
		name   string
		modify func(*auth.SignupInput)
		field  string
	}{
		{"valid", func(*auth.SignupInput) {}, ""},
		{"short password", func(in *auth.SignupInput) { in.Password, in.ConfirmPassword = "Ab1", "Ab1" }, "password"},
		{"weak password", func(in *auth.SignupInput) { in.Password, in.ConfirmPassword = "alllowercase1", "alllowercase1" }, "password"},
		{"mismatch", func(in *auth.SignupInput) { in.ConfirmPassword = "Souffle124" }, "confirmPassword"},
		{"short first name", func(in *auth.SignupInput) { in.FirstName = " J " }, "firstName"},
		{"terms not accepted", func(in *auth.SignupInput) { in.AcceptTerms = false }, "acceptTerms"},
		{"bad email", func(in *auth.SignupInput) { in.Email = "julia@" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.modify(&in)
			fe := v.ValidateSignup(&in)
			if tt.field == "" {
				require.Nil(t, fe)
				require.Equal(t, "julia@example.com", in.Email)
				return
			}
			require.Len(t, fe, 1)
			require.Contains(t, fe, tt.field)
		})
	}
}

func TestValidateChangePassword(t *testing.T) {
	v := auth.NewValidator()

	fe := v.ValidateChangePassword(&auth.ChangePasswordInput{CurrentPassword: "Souffle123", NewPassword: "Souffle123", ConfirmPassword: "Souffle123"})
	require.Equal(t, "The new password must be different from the current one", fe["newPassword"])

	fe = v.ValidateChangePassword(&auth.ChangePasswordInput{NewPassword: "Bearnaise456", ConfirmPassword: "Bearnaise456"})
	require.Equal(t, "Current password is required", fe["currentPassword"])

	require.Nil(t, v.ValidateChangePassword(&auth.ChangePasswordInput{CurrentPassword: "Souffle123", NewPassword: "Bearnaise456", ConfirmPassword: "Bearnaise456"}))
}

func TestValidateUpdateProfilePhone(t *testing.T) {
	v := auth.NewValidator()
	for phone, ok := range map[string]bool{
		"":                  true,
		"0612345678":        true,
		"+33 6 12 34 56 78": true,
		"06123":             false,
		"0012345678":        false,
		"+44612345678":      false,
	} {
		in := auth.UpdateProfileInput{FirstName: "Julia", LastName: "Child", Email: "julia@example.com", Phone: phone}
		fe := v.ValidateUpdateProfile(&in)
		if ok {
			require.Nil(t, fe, phone)
		} else {
			require.Contains(t, fe, "phone", phone)
		}
	}
}

func TestValidateProvider(t *testing.T) {
	v := auth.NewValidator()
	for _, p := range auth.SupportedProviders {
		require.Nil(t, v.ValidateProvider(p))
	}
	require.Equal(t, "Unsupported sign-in provider", v.ValidateProvider("facebook")["provider"])
}
