package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/recipe-box/auth"
)

const msgOAuthCancelled = "Sign-in was cancelled"

// OAuthStartHandler sends the browser to the provider's authorization page (GET /auth/oauth/{provider}).
func (s *Server) OAuthStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.auth.InitiateOAuth(r.Context(), s.cookieStore(w, r), r.PathValue("provider"))
		if !res.Success {
			redirectWithError(w, r, RouteLogin, res.Error)
			return
		}
		redirectSuccess(w, r, res.Data.URL)
	}
}

// OAuthCallbackHandler completes a provider sign-in (GET /auth/callback/{provider}).
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := r.PathValue("provider")
		query := r.URL.Query()
		store := s.cookieStore(w, r)

		if providerErr := query.Get("error"); providerErr != "" {
			zerolog.Ctx(r.Context()).Info().Str("provider", provider).Str("error", providerErr).Msg("provider refused sign-in")
			if auth.IsSupportedProvider(provider) {
				store.ClearOAuthState(provider)
			}
			redirectWithError(w, r, RouteLogin, msgOAuthCancelled)
			return
		}

		res := s.auth.CompleteOAuth(r.Context(), store, auth.OAuthCallbackInput{
			Provider: provider,
			Code:     query.Get("code"),
			State:    query.Get("state"),
		})
		if !res.Success {
			redirectWithError(w, r, RouteLogin, res.Error)
			return
		}
		redirectSuccess(w, r, RouteDashboard)
	}
}
