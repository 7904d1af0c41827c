package errors

import (
	"errors"
	"fmt"
)

// Common error types shared by the session and auth packages
var (
	// Session errors
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrInvalidSession   = errors.New("invalid session")
	ErrSessionExpired   = errors.New("session expired")

	// Token errors
	ErrInvalidToken      = errors.New("invalid token")
	ErrWeakSigningKey    = errors.New("signing key too short")
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// Throttling errors
	ErrRateLimited      = errors.New("rate limited")
	ErrStoreUnavailable = errors.New("store unavailable")

	// General errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
