package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/backend"
	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
	"github.com/jrsteele09/recipe-box/internal/utils"
	"github.com/jrsteele09/recipe-box/sessions"
)

type SignupData struct {
	UserID                    string `json:"userId"`
	RequiresEmailVerification bool   `json:"requiresEmailVerification"`
}

// LoginData either confirms a signed-in user or carries the temp token for the second factor.
type LoginData struct {
	UserID             string     `json:"userId,omitempty"`
	RequiresTwoFactor  bool       `json:"requiresTwoFactor"`
	TempToken          string     `json:"tempToken,omitempty"`
	TempTokenExpiresAt *time.Time `json:"tempTokenExpiresAt,omitempty"`
}

type UserIDData struct {
	UserID string `json:"userId"`
}

// Signup creates an account. A session is only started when the API does not require
// the email to be verified first.
func (s *Service) Signup(ctx context.Context, store sessions.Store, in SignupInput) Result[SignupData] {
	return run(ctx, action[SignupInput, SignupData]{
		name:     "signup",
		validate: s.validator.ValidateSignup,
		handler: func(ctx context.Context, in SignupInput) (SignupData, error) {
			resp, err := s.api.Signup(ctx, backend.SignupRequest{
				Email:     in.Email,
				Password:  in.Password,
				FirstName: in.FirstName,
				LastName:  in.LastName,
			})
			if err != nil {
				return SignupData{}, errors.Wrap(err, "[Service.Signup]")
			}
			if !resp.RequiresEmailVerification {
				if err := s.sessions.StartSession(store, resp.User.ToSessionUser()); err != nil {
					return SignupData{}, err
				}
			}
			return SignupData{UserID: resp.User.ID, RequiresEmailVerification: resp.RequiresEmailVerification}, nil
		},
		message: func(d SignupData) string {
			if d.RequiresEmailVerification {
				return msgSignedUpVerify
			}
			return msgSignedUp
		},
		statuses: statusErrors{
			http.StatusConflict:            actionErr(CodeAccountExists, msgAccountExists),
			http.StatusUnprocessableEntity: actionErr(CodeValidation, msgInvalidInput),
		},
	}, in)
}

// Login checks credentials. When a second factor is required no session is created and the
// caller receives a temp token to present to VerifyTwoFactor.
func (s *Service) Login(ctx context.Context, store sessions.Store, in LoginInput) Result[LoginData] {
	res := run(ctx, action[LoginInput, LoginData]{
		name:     "login",
		validate: s.validator.ValidateLogin,
		handler: func(ctx context.Context, in LoginInput) (LoginData, error) {
			if err := s.checkLoginThrottle(ctx, in.Email); err != nil {
				return LoginData{}, err
			}

			resp, err := s.api.Login(ctx, backend.LoginRequest{Email: in.Email, Password: in.Password})
			if err != nil {
				if backend.StatusCode(err) == http.StatusUnauthorized {
					s.recordFailedLogin(ctx, in.Email)
				}
				return LoginData{}, errors.Wrap(err, "[Service.Login]")
			}
			s.resetLoginThrottle(ctx, in.Email)

			if resp.RequiresTwoFactor {
				if resp.TempToken == "" {
					return LoginData{}, errors.New("[Service.Login] two factor required without temp token")
				}
				expiresAt := utils.ValueOr(resp.TempTokenExpiresAt, s.nowTime().Add(twoFactorTempTokenTTL))
				return LoginData{RequiresTwoFactor: true, TempToken: resp.TempToken, TempTokenExpiresAt: &expiresAt}, nil
			}

			if resp.User == nil {
				return LoginData{}, errors.New("[Service.Login] identity API returned no user")
			}
			if err := s.sessions.StartSession(store, resp.User.ToSessionUser()); err != nil {
				return LoginData{}, err
			}
			return LoginData{UserID: resp.User.ID}, nil
		},
		message: func(d LoginData) string {
			if d.RequiresTwoFactor {
				return msgTwoFactorRequired
			}
			return msgSignedIn
		},
		statuses: statusErrors{
			http.StatusUnauthorized: actionErr(CodeInvalidCredentials, msgInvalidCredentials),
			http.StatusForbidden:    actionErr(CodeAccountDisabled, msgAccountDisabled),
		},
	}, in)
	if res.Code == CodeRateLimited {
		res.RetryAfter = s.loginRetryAfter(ctx, in.Email)
	}
	return res
}

// VerifyTwoFactor completes a login that required a second factor.
func (s *Service) VerifyTwoFactor(ctx context.Context, store sessions.Store, in VerifyTwoFactorInput) Result[UserIDData] {
	return run(ctx, action[VerifyTwoFactorInput, UserIDData]{
		name:     "verify-2fa",
		validate: s.validator.ValidateVerifyTwoFactor,
		handler: func(ctx context.Context, in VerifyTwoFactorInput) (UserIDData, error) {
			resp, err := s.api.VerifyTwoFactor(ctx, in.Code, in.TempToken)
			if err != nil {
				return UserIDData{}, errors.Wrap(err, "[Service.VerifyTwoFactor]")
			}
			if err := s.sessions.StartSession(store, resp.User.ToSessionUser()); err != nil {
				return UserIDData{}, err
			}
			return UserIDData{UserID: resp.User.ID}, nil
		},
		message: staticMessage[UserIDData](msgSignedIn),
		statuses: statusErrors{
			http.StatusBadRequest:   actionErr(CodeTwoFactorInvalid, msgCodeInvalid),
			http.StatusUnauthorized: actionErr(CodeTwoFactorInvalid, msgCodeInvalid),
		},
	}, in)
}

// Logout tells the identity API on a best-effort basis and always clears the local session.
func (s *Service) Logout(ctx context.Context, store sessions.Store) Result[Empty] {
	if user := s.sessions.GetCurrentUser(store); user != nil {
		if err := s.api.Logout(ctx, user.ID); err != nil {
			log.Warn().Err(err).Str("userID", user.ID).Msg("remote logout failed")
		}
	}
	s.sessions.Clear(store)
	return succeed(Empty{}, msgSignedOut)
}

func (s *Service) checkLoginThrottle(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	err := s.limiter.CheckLogin(ctx, email)
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.ErrRateLimited) {
		return err
	}
	log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
	return nil
}

func (s *Service) recordFailedLogin(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.IncrementLogin(ctx, email); err != nil {
		log.Warn().Err(err).Msg("could not record failed login")
	}
}

// loginRetryAfter is the whole seconds left in email's throttle window, or 0 if unknown.
func (s *Service) loginRetryAfter(ctx context.Context, email string) int {
	if s.limiter == nil {
		return 0
	}
	wait, err := s.limiter.RetryAfter(ctx, email)
	if err != nil {
		log.Warn().Err(err).Msg("could not read login throttle window")
		return 0
	}
	return int((wait + time.Second - 1) / time.Second)
}

func (s *Service) resetLoginThrottle(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.ResetLogin(ctx, email); err != nil {
		log.Warn().Err(err).Msg("could not reset login throttle")
	}
}
