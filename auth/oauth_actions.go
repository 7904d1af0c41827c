package auth

import (
	"context"
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
	"github.com/jrsteele09/recipe-box/sessions"
)

// SupportedProviders lists the OAuth providers the identity API brokers.
var SupportedProviders = []string{"google", "github", "microsoft"}

func IsSupportedProvider(provider string) bool {
	for _, p := range SupportedProviders {
		if p == provider {
			return true
		}
	}
	return false
}

type OAuthStartData struct {
	URL string `json:"url"`
}

// CallbackPath is the application path a provider redirects back to.
func CallbackPath(provider string) string {
	return "/auth/callback/" + provider
}

func (s *Service) redirectURI(provider string) string {
	return s.appURL + CallbackPath(provider)
}

// InitiateOAuth stores a fresh state nonce for provider and returns the authorization URL
// the browser should be sent to.
func (s *Service) InitiateOAuth(ctx context.Context, store sessions.Store, provider string) Result[OAuthStartData] {
	return run(ctx, action[string, OAuthStartData]{
		name:     "oauth-initiate",
		validate: func(p *string) FieldErrors { return s.validator.ValidateProvider(*p) },
		handler: func(ctx context.Context, provider string) (OAuthStartData, error) {
			state := s.newState()
			store.SetOAuthState(provider, state)

			authURL, err := s.api.OAuthAuthorize(ctx, provider, state, s.redirectURI(provider))
			if err != nil {
				store.ClearOAuthState(provider)
				return OAuthStartData{}, errors.Wrap(err, "[Service.InitiateOAuth]")
			}
			if authURL == "" {
				store.ClearOAuthState(provider)
				return OAuthStartData{}, errors.New("[Service.InitiateOAuth] identity API returned no URL")
			}
			return OAuthStartData{URL: authURL}, nil
		},
		message: staticMessage[OAuthStartData](msgOAuthRedirecting),
	}, provider)
}

// CompleteOAuth checks the returned state against the stored nonce, which is discarded
// either way, and signs the user in.
func (s *Service) CompleteOAuth(ctx context.Context, store sessions.Store, in OAuthCallbackInput) Result[UserIDData] {
	in.normalize()
	expected, found := "", false
	if IsSupportedProvider(in.Provider) {
		expected, found = store.ReadOAuthState(in.Provider)
		store.ClearOAuthState(in.Provider)
	}

	return run(ctx, action[OAuthCallbackInput, UserIDData]{
		name:     "oauth-callback",
		validate: s.validator.ValidateOAuthCallback,
		handler: func(ctx context.Context, in OAuthCallbackInput) (UserIDData, error) {
			if !found || subtle.ConstantTimeCompare([]byte(expected), []byte(in.State)) != 1 {
				log.Warn().Str("provider", in.Provider).Bool("stateFound", found).Msg("oauth state mismatch")
				return UserIDData{}, apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "[Service.CompleteOAuth] %s", in.Provider)
			}
			resp, err := s.api.OAuthCallback(ctx, in.Provider, in.Code, s.redirectURI(in.Provider))
			if err != nil {
				return UserIDData{}, errors.Wrap(err, "[Service.CompleteOAuth]")
			}
			if err := s.sessions.StartSession(store, resp.User.ToSessionUser()); err != nil {
				return UserIDData{}, err
			}
			return UserIDData{UserID: resp.User.ID}, nil
		},
		message: staticMessage[UserIDData](msgSignedIn),
	}, in)
}
