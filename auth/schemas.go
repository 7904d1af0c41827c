package auth

import (
	"github.com/xeipuuv/gojsonschema"
)

// Shared property definitions are spliced into each schema below.
const (
	emailProperty    = `{"type": "string", "minLength": 1, "maxLength": 254, "format": "email", "pattern": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"}`
	passwordProperty = `{"type": "string", "minLength": 8, "maxLength": 100}`
	nonEmptyProperty = `{"type": "string", "minLength": 1}`
	nameProperty     = `{"type": "string", "minLength": 2, "maxLength": 50}`
	otpProperty      = `{"type": "string", "pattern": "^[0-9]{6}$"}`
)

var (
	signupSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["email", "password", "confirmPassword", "firstName", "lastName", "acceptTerms"],
		"properties": {
			"email": ` + emailProperty + `,
			"password": ` + passwordProperty + `,
			"confirmPassword": ` + nonEmptyProperty + `,
			"firstName": ` + nameProperty + `,
			"lastName": ` + nameProperty + `,
			"acceptTerms": {"type": "boolean", "enum": [true]}
		}
	}`)

	loginSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["email", "password"],
		"properties": {
			"email": ` + emailProperty + `,
			"password": ` + nonEmptyProperty + `,
			"rememberMe": {"type": "boolean"}
		}
	}`)

	verifyTwoFactorSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["code", "tempToken"],
		"properties": {
			"code": ` + otpProperty + `,
			"tempToken": ` + nonEmptyProperty + `
		}
	}`)

	forgotPasswordSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["email"],
		"properties": {
			"email": ` + emailProperty + `
		}
	}`)

	resetPasswordSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["token", "password", "confirmPassword"],
		"properties": {
			"token": ` + nonEmptyProperty + `,
			"password": ` + passwordProperty + `,
			"confirmPassword": ` + nonEmptyProperty + `
		}
	}`)

	changePasswordSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["currentPassword", "newPassword", "confirmPassword"],
		"properties": {
			"currentPassword": ` + nonEmptyProperty + `,
			"newPassword": ` + passwordProperty + `,
			"confirmPassword": ` + nonEmptyProperty + `
		}
	}`)

	verifyEmailSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["code"],
		"properties": {
			"code": ` + otpProperty + `
		}
	}`)

	updateProfileSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["firstName", "lastName", "email"],
		"properties": {
			"firstName": ` + nameProperty + `,
			"lastName": ` + nameProperty + `,
			"email": ` + emailProperty + `,
			"phone": {"type": "string", "pattern": "^((\\+33|0)[1-9]([0-9]{2}){4})?$"},
			"bio": {"type": "string", "maxLength": 500}
		}
	}`)

	toggleTwoFactorSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["enabled", "password"],
		"properties": {
			"enabled": {"type": "boolean"},
			"password": ` + nonEmptyProperty + `
		}
	}`)

	deleteAccountSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["password"],
		"properties": {
			"password": ` + nonEmptyProperty + `
		}
	}`)

	oauthCallbackSchema = mustCompileSchema(`{
		"type": "object",
		"required": ["provider", "code", "state"],
		"properties": {
			"provider": {"type": "string", "enum": ["google", "github", "microsoft"]},
			"code": ` + nonEmptyProperty + `,
			"state": ` + nonEmptyProperty + `
		}
	}`)
)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("auth: invalid schema: " + err.Error())
	}
	return schema
}
