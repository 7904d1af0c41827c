package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/sessions"
)

// ForgotPassword asks for a reset email. The outcome is the same whether or not the
// address belongs to an account.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) Result[Empty] {
	return run(ctx, action[ForgotPasswordInput, Empty]{
		name:     "forgot-password",
		validate: s.validator.ValidateForgotPassword,
		handler: func(ctx context.Context, in ForgotPasswordInput) (Empty, error) {
			if err := s.api.ForgotPassword(ctx, in.Email); err != nil {
				log.Warn().Err(err).Msg("forgot password request failed")
			}
			return Empty{}, nil
		},
		message: staticMessage[Empty](msgResetRequested),
	}, in)
}

func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) Result[Empty] {
	return run(ctx, action[ResetPasswordInput, Empty]{
		name:     "reset-password",
		validate: s.validator.ValidateResetPassword,
		handler: func(ctx context.Context, in ResetPasswordInput) (Empty, error) {
			if err := s.api.ResetPassword(ctx, in.Token, in.Password); err != nil {
				return Empty{}, errors.Wrap(err, "[Service.ResetPassword]")
			}
			return Empty{}, nil
		},
		message: staticMessage[Empty](msgPasswordReset),
		statuses: statusErrors{
			http.StatusBadRequest:   actionErr(CodeLinkExpired, msgLinkExpired),
			http.StatusUnauthorized: actionErr(CodeLinkExpired, msgLinkExpired),
			http.StatusNotFound:     actionErr(CodeLinkExpired, msgLinkExpired),
			http.StatusGone:         actionErr(CodeLinkExpired, msgLinkExpired),
		},
	}, in)
}

func (s *Service) ChangePassword(ctx context.Context, store sessions.Store, in ChangePasswordInput) Result[UserIDData] {
	return run(ctx, action[ChangePasswordInput, UserIDData]{
		name:     "change-password",
		validate: s.validator.ValidateChangePassword,
		handler: func(ctx context.Context, in ChangePasswordInput) (UserIDData, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return UserIDData{}, err
			}
			if err := s.api.ChangePassword(ctx, user.ID, in.CurrentPassword, in.NewPassword); err != nil {
				return UserIDData{}, errors.Wrap(err, "[Service.ChangePassword]")
			}
			return UserIDData{UserID: user.ID}, nil
		},
		message: staticMessage[UserIDData](msgPasswordChanged),
		statuses: statusErrors{
			http.StatusUnauthorized: actionErr(CodeWrongPassword, msgWrongCurrent),
		},
	}, in)
}
