package sessions

import (
	"net/http"
	"time"
)

var _ Store = (*CookieStore)(nil)

// CookieStore keeps the session token and OAuth state in HTTP-only cookies for one request.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	pending map[string]*http.Cookie
}

// NewCookieStore binds a store to a single request/response pair. secure marks cookies
// Secure and should be true in production.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		w:       w,
		r:       r,
		secure:  secure,
		pending: make(map[string]*http.Cookie),
	}
}

func (s *CookieStore) Read() (string, bool) {
	return s.read(CookieName)
}

func (s *CookieStore) Set(token string, maxAge time.Duration) {
	s.write(CookieName, token, int(maxAge/time.Second))
}

func (s *CookieStore) Clear() {
	s.write(CookieName, "", -1)
}

func (s *CookieStore) SetOAuthState(provider, state string) {
	s.write(OAuthStateCookieName(provider), state, int(OAuthStateMaxAge/time.Second))
}

func (s *CookieStore) ReadOAuthState(provider string) (string, bool) {
	return s.read(OAuthStateCookieName(provider))
}

func (s *CookieStore) ClearOAuthState(provider string) {
	s.write(OAuthStateCookieName(provider), "", -1)
}

func (s *CookieStore) read(name string) (string, bool) {
	if c, ok := s.pending[name]; ok {
		if c.MaxAge < 0 || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
	if s.r == nil {
		return "", false
	}
	c, err := s.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) write(name, value string, maxAge int) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	s.pending[name] = c
	http.SetCookie(s.w, c)
}
