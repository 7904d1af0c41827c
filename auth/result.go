package auth

// ErrorCode is the stable machine-readable reason carried by a failed Result.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeAccountExists      ErrorCode = "account_exists"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeAccountDisabled    ErrorCode = "account_disabled"
	CodeTwoFactorInvalid   ErrorCode = "two_factor_invalid"
	CodeLinkExpired        ErrorCode = "link_expired"
	CodeCodeInvalid        ErrorCode = "code_invalid"
	CodeWrongPassword      ErrorCode = "wrong_password"
	CodeAlreadyVerified    ErrorCode = "already_verified"
	CodeEmailInUse         ErrorCode = "email_in_use"
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodeOAuthState         ErrorCode = "oauth_state_mismatch"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeUnexpected         ErrorCode = "unexpected"
)

// FieldErrors maps an input field's JSON name to its first validation message.
type FieldErrors map[string]string

// Result is what every auth action returns. Exactly one of the success or failure
// fields groups is populated.
type Result[T any] struct {
	Success     bool        `json:"success"`
	Data        T           `json:"data,omitempty"`
	Message     string      `json:"message,omitempty"`
	Error       string      `json:"error,omitempty"`
	Code        ErrorCode   `json:"code,omitempty"`
	FieldErrors FieldErrors `json:"fieldErrors,omitempty"`
	// RetryAfter is the number of seconds before a rate limited action may be retried
	RetryAfter int `json:"retryAfter,omitempty"`
}

// Empty is the payload of actions that return nothing.
type Empty struct{}

func succeed[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func fail[T any](code ErrorCode, message string) Result[T] {
	return Result[T]{Error: message, Code: code}
}

func invalid[T any](fieldErrors FieldErrors) Result[T] {
	return Result[T]{Error: msgInvalidInput, Code: CodeValidation, FieldErrors: fieldErrors}
}

// ActionError is a failure an action reports to the caller verbatim.
type ActionError struct {
	Code    ErrorCode
	Message string
}

func (e *ActionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func actionErr(code ErrorCode, message string) *ActionError {
	return &ActionError{Code: code, Message: message}
}
