package auth

import (
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jrsteele09/recipe-box/users"
)

// Field messages, keyed by JSON field name, shown instead of the schema library's wording.
var fieldMessages = map[string]string{
	"email":           "Enter a valid email address",
	"password":        "Password must be between 8 and 100 characters",
	"newPassword":     "Password must be between 8 and 100 characters",
	"confirmPassword": "Please confirm the password",
	"currentPassword": "Current password is required",
	"firstName":       "First name must be between 2 and 50 characters",
	"lastName":        "Last name must be between 2 and 50 characters",
	"acceptTerms":     "You must accept the terms of use",
	"code":            "The code must be 6 digits",
	"tempToken":       "The verification session is missing. Sign in again.",
	"token":           "The reset link is missing its token",
	"phone":           "Enter a valid phone number",
	"bio":             "Bio must be at most 500 characters",
	"enabled":         "Choose whether to enable two-factor authentication",
	"provider":        "Unsupported sign-in provider",
	"state":           "Sign-in state is missing",
}

const (
	msgPasswordsDontMatch = "Passwords do not match"
	msgPasswordUnchanged  = "The new password must be different from the current one"
)

// Validator normalizes action inputs and checks them against their JSON schemas and the
// rules a schema cannot express.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateSignup(in *SignupInput) FieldErrors {
	in.normalize()
	fe := validateSchema(signupSchema, in)
	v.passwordStrength(fe, "password", in.Password)
	v.passwordsMatch(fe, "confirmPassword", in.Password, in.ConfirmPassword)
	return fe.orNil()
}

func (v *Validator) ValidateLogin(in *LoginInput) FieldErrors {
	in.normalize()
	return validateSchema(loginSchema, in).orNil()
}

func (v *Validator) ValidateVerifyTwoFactor(in *VerifyTwoFactorInput) FieldErrors {
	in.normalize()
	return validateSchema(verifyTwoFactorSchema, in).orNil()
}

func (v *Validator) ValidateForgotPassword(in *ForgotPasswordInput) FieldErrors {
	in.normalize()
	return validateSchema(forgotPasswordSchema, in).orNil()
}

func (v *Validator) ValidateResetPassword(in *ResetPasswordInput) FieldErrors {
	in.normalize()
	fe := validateSchema(resetPasswordSchema, in)
	v.passwordStrength(fe, "password", in.Password)
	v.passwordsMatch(fe, "confirmPassword", in.Password, in.ConfirmPassword)
	return fe.orNil()
}

func (v *Validator) ValidateChangePassword(in *ChangePasswordInput) FieldErrors {
	fe := validateSchema(changePasswordSchema, in)
	v.passwordStrength(fe, "newPassword", in.NewPassword)
	if _, ok := fe["newPassword"]; !ok && in.NewPassword == in.CurrentPassword {
		fe["newPassword"] = msgPasswordUnchanged
	}
	v.passwordsMatch(fe, "confirmPassword", in.NewPassword, in.ConfirmPassword)
	return fe.orNil()
}

func (v *Validator) ValidateVerifyEmail(in *VerifyEmailInput) FieldErrors {
	in.normalize()
	return validateSchema(verifyEmailSchema, in).orNil()
}

func (v *Validator) ValidateUpdateProfile(in *UpdateProfileInput) FieldErrors {
	in.normalize()
	return validateSchema(updateProfileSchema, in).orNil()
}

func (v *Validator) ValidateToggleTwoFactor(in *ToggleTwoFactorInput) FieldErrors {
	return validateSchema(toggleTwoFactorSchema, in).orNil()
}

func (v *Validator) ValidateDeleteAccount(in *DeleteAccountInput) FieldErrors {
	return validateSchema(deleteAccountSchema, in).orNil()
}

func (v *Validator) ValidateOAuthCallback(in *OAuthCallbackInput) FieldErrors {
	in.normalize()
	return validateSchema(oauthCallbackSchema, in).orNil()
}

// ValidateProvider checks an OAuth provider name.
func (v *Validator) ValidateProvider(provider string) FieldErrors {
	if !IsSupportedProvider(provider) {
		return FieldErrors{"provider": fieldMessages["provider"]}
	}
	return nil
}

func (v *Validator) passwordStrength(fe FieldErrors, field, password string) {
	if _, ok := fe[field]; ok {
		return
	}
	if err := users.ValidatePasswordStrength(password); err != nil {
		fe[field] = capitalize(err.Error())
	}
}

func (v *Validator) passwordsMatch(fe FieldErrors, field, password, confirm string) {
	if _, ok := fe[field]; ok {
		return
	}
	if password != confirm {
		fe[field] = msgPasswordsDontMatch
	}
}

func (fe FieldErrors) orNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// validateSchema keeps the first error reported for each field.
func validateSchema(schema *gojsonschema.Schema, input any) FieldErrors {
	fe := FieldErrors{}
	result, err := schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		log.Err(err).Msg("schema validation could not run")
		fe["_"] = msgInvalidInput
		return fe
	}
	if result.Valid() {
		return fe
	}
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if property, ok := re.Details()["property"].(string); ok {
				field = property
			}
		}
		if _, seen := fe[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field]
		if !ok {
			msg = re.Description()
		}
		fe[field] = msg
	}
	return fe
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
