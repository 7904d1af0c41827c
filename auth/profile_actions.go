package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/recipe-box/backend"
	"github.com/jrsteele09/recipe-box/sessions"
	"github.com/jrsteele09/recipe-box/users"
)

type ToggleTwoFactorData struct {
	Enabled     bool     `json:"enabled"`
	QRCode      string   `json:"qrCode,omitempty"`
	BackupCodes []string `json:"backupCodes,omitempty"`
}

type DeleteAccountData struct {
	DeletedUserID string `json:"deletedUserId"`
}

// VerifyEmail confirms the emailed code and re-mints the session with the verified flag.
func (s *Service) VerifyEmail(ctx context.Context, store sessions.Store, in VerifyEmailInput) Result[UserIDData] {
	return run(ctx, action[VerifyEmailInput, UserIDData]{
		name:     "verify-email",
		validate: s.validator.ValidateVerifyEmail,
		handler: func(ctx context.Context, in VerifyEmailInput) (UserIDData, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return UserIDData{}, err
			}
			resp, err := s.api.VerifyEmail(ctx, user.ID, in.Code)
			if err != nil {
				return UserIDData{}, errors.Wrap(err, "[Service.VerifyEmail]")
			}
			updated := s.remintUser(user, resp)
			updated.EmailVerified = true
			if err := s.sessions.StartSession(store, updated); err != nil {
				return UserIDData{}, err
			}
			return UserIDData{UserID: user.ID}, nil
		},
		message: staticMessage[UserIDData](msgEmailVerified),
		statuses: statusErrors{
			http.StatusBadRequest:   actionErr(CodeCodeInvalid, msgCodeInvalid),
			http.StatusUnauthorized: actionErr(CodeCodeInvalid, msgCodeInvalid),
			http.StatusGone:         actionErr(CodeCodeInvalid, msgCodeInvalid),
		},
	}, in)
}

// ResendVerification fails fast, without calling the API, for an already verified user.
func (s *Service) ResendVerification(ctx context.Context, store sessions.Store) Result[Empty] {
	return run(ctx, action[Empty, Empty]{
		name: "resend-verification",
		handler: func(ctx context.Context, _ Empty) (Empty, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return Empty{}, err
			}
			if user.EmailVerified {
				return Empty{}, actionErr(CodeAlreadyVerified, msgAlreadyVerified)
			}
			if err := s.api.ResendVerification(ctx, user.ID); err != nil {
				return Empty{}, errors.Wrap(err, "[Service.ResendVerification]")
			}
			return Empty{}, nil
		},
		message: staticMessage[Empty](msgVerificationResent),
	}, Empty{})
}

func (s *Service) UpdateProfile(ctx context.Context, store sessions.Store, in UpdateProfileInput) Result[UserIDData] {
	return run(ctx, action[UpdateProfileInput, UserIDData]{
		name:     "update-profile",
		validate: s.validator.ValidateUpdateProfile,
		handler: func(ctx context.Context, in UpdateProfileInput) (UserIDData, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return UserIDData{}, err
			}
			resp, err := s.api.UpdateProfile(ctx, user.ID, backend.ProfileUpdate{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
				Bio:       in.Bio,
			})
			if err != nil {
				return UserIDData{}, errors.Wrap(err, "[Service.UpdateProfile]")
			}
			if err := s.sessions.StartSession(store, s.remintUser(user, resp)); err != nil {
				return UserIDData{}, err
			}
			return UserIDData{UserID: user.ID}, nil
		},
		message: staticMessage[UserIDData](msgProfileUpdated),
		statuses: statusErrors{
			http.StatusConflict: actionErr(CodeEmailInUse, msgEmailInUse),
		},
	}, in)
}

// ToggleTwoFactor switches the second factor and re-mints the session with the new flag.
func (s *Service) ToggleTwoFactor(ctx context.Context, store sessions.Store, in ToggleTwoFactorInput) Result[ToggleTwoFactorData] {
	return run(ctx, action[ToggleTwoFactorInput, ToggleTwoFactorData]{
		name:     "toggle-2fa",
		validate: s.validator.ValidateToggleTwoFactor,
		handler: func(ctx context.Context, in ToggleTwoFactorInput) (ToggleTwoFactorData, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return ToggleTwoFactorData{}, err
			}
			resp, err := s.api.ToggleTwoFactor(ctx, user.ID, *in.Enabled, in.Password)
			if err != nil {
				return ToggleTwoFactorData{}, errors.Wrap(err, "[Service.ToggleTwoFactor]")
			}
			user.TwoFactorEnabled = resp.Enabled
			if err := s.sessions.StartSession(store, user); err != nil {
				return ToggleTwoFactorData{}, err
			}
			return ToggleTwoFactorData{Enabled: resp.Enabled, QRCode: resp.QRCode, BackupCodes: resp.BackupCodes}, nil
		},
		message: func(d ToggleTwoFactorData) string {
			if d.Enabled {
				return msgTwoFactorEnabled
			}
			return msgTwoFactorDisabled
		},
		statuses: statusErrors{
			http.StatusUnauthorized: actionErr(CodeWrongPassword, msgWrongPassword),
		},
	}, in)
}

// DeleteAccount removes the account and then the session.
func (s *Service) DeleteAccount(ctx context.Context, store sessions.Store, in DeleteAccountInput) Result[DeleteAccountData] {
	return run(ctx, action[DeleteAccountInput, DeleteAccountData]{
		name:     "delete-account",
		validate: s.validator.ValidateDeleteAccount,
		handler: func(ctx context.Context, in DeleteAccountInput) (DeleteAccountData, error) {
			user, err := s.sessions.RequireAuth(store)
			if err != nil {
				return DeleteAccountData{}, err
			}
			if err := s.api.DeleteAccount(ctx, user.ID, in.Password); err != nil {
				return DeleteAccountData{}, errors.Wrap(err, "[Service.DeleteAccount]")
			}
			s.sessions.Clear(store)
			return DeleteAccountData{DeletedUserID: user.ID}, nil
		},
		message: staticMessage[DeleteAccountData](msgAccountDeleted),
		statuses: statusErrors{
			http.StatusUnauthorized: actionErr(CodeWrongPassword, msgWrongPassword),
		},
	}, in)
}

// Me returns the signed-in user snapshot, or nil.
func (s *Service) Me(store sessions.Store) *users.SessionUser {
	return s.sessions.GetCurrentUser(store)
}

// RefreshSession extends the current session's expiry without re-fetching the user.
func (s *Service) RefreshSession(store sessions.Store) Result[Empty] {
	refreshed, err := s.sessions.RefreshSession(store)
	if err != nil {
		return fail[Empty](CodeUnexpected, msgUnexpected)
	}
	if !refreshed {
		return fail[Empty](CodeUnauthenticated, msgUnauthenticated)
	}
	return succeed(Empty{}, msgSessionRefreshed)
}

// remintUser prefers the user returned by the API, falling back to the current snapshot.
func (s *Service) remintUser(current users.SessionUser, resp *backend.UserResponse) users.SessionUser {
	if resp == nil || resp.User.ID == "" {
		return current
	}
	return resp.User.ToSessionUser()
}
