package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/recipe-box/sessions"
	"github.com/jrsteele09/recipe-box/token"
	"github.com/jrsteele09/recipe-box/users"
)

// GuardDecision is the outcome of checking a request against the route policy.
type GuardDecision struct {
	Allow    bool
	Redirect string
}

func allow() GuardDecision {
	return GuardDecision{Allow: true}
}

func redirectTo(path string) GuardDecision {
	return GuardDecision{Redirect: path}
}

// Decide applies the route policy to path for the given session, which is nil when the
// request has no valid session. Checks run in a fixed order: public routes, then
// authentication, then email verification, then the admin role.
func (p RoutePolicy) Decide(path string, session *token.SessionData) GuardDecision {
	class := p.Classify(path)
	switch class {
	case ClassExempt:
		return allow()
	case ClassPublic:
		if session != nil && p.redirectsSignedIn(path) {
			return redirectTo(RouteDashboard)
		}
		return allow()
	}

	if session == nil {
		return redirectTo(RouteLogin + "?" + QueryCallbackURL + "=" + url.QueryEscape(path))
	}
	if class == ClassVerifiedEmail && !session.User.EmailVerified {
		return redirectTo(RouteVerifyEmail)
	}
	if class == ClassAdmin && !session.User.IsAdmin() {
		return redirectTo(RouteDashboard)
	}
	return allow()
}

// GuardMiddleware redirects requests the route policy refuses and puts the session of
// allowed requests in the request context.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.policy.Classify(r.URL.Path) == ClassExempt {
			next(w, r)
			return
		}

		session := s.sessions.GetSession(s.cookieStore(w, r))
		decision := s.policy.Decide(r.URL.Path, session)
		if !decision.Allow {
			zerolog.Ctx(r.Context()).Debug().
				Str("path", r.URL.Path).
				Str("redirect", decision.Redirect).
				Bool("authenticated", session != nil).
				Msg("route guard redirect")
			redirectSuccess(w, r, decision.Redirect)
			return
		}

		if session != nil {
			r = r.WithContext(sessions.NewContext(r.Context(), session))
		}
		next(w, r)
	}
}

// currentUser returns the user the guard placed in the request context.
func currentUser(r *http.Request) *users.SessionUser {
	data, ok := sessions.FromContext(r.Context())
	if !ok || data == nil {
		return nil
	}
	return &data.User
}
