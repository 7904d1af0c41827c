package sessions

import (
	"time"
)

const (
	// CookieName is the name of the cookie holding the signed session token
	CookieName = "session"
	// OAuthStateCookiePrefix prefixes the per-provider OAuth state cookie
	OAuthStateCookiePrefix = "oauth_state_"
	// OAuthStateMaxAge is how long an OAuth state nonce survives
	OAuthStateMaxAge = 10 * time.Minute
)

// Store abstracts where the client-held session token and OAuth state nonces live.
// Reads after a write in the same request observe that write.
type Store interface {
	// Read returns the session token, if any. Absence is not an error.
	Read() (string, bool)

	// Set stores the session token for maxAge
	Set(token string, maxAge time.Duration)

	// Clear removes the session token
	Clear()

	SetOAuthState(provider, state string)
	ReadOAuthState(provider string) (string, bool)
	ClearOAuthState(provider string)
}

// OAuthStateCookieName returns the cookie name used for provider's state nonce.
func OAuthStateCookieName(provider string) string {
	return OAuthStateCookiePrefix + provider
}
