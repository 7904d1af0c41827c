package auth_test

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/backend"
)

var _ auth.IdentityAPI = (*fakeIdentityAPI)(nil)

// fakeIdentityAPI answers with canned responses and records every call by name.
type fakeIdentityAPI struct {
	lock  sync.Mutex
	calls []string
	args  map[string][]any

	signupResp   *backend.SignupResponse
	loginResp    *backend.LoginResponse
	userResp     *backend.UserResponse
	toggleResp   *backend.TwoFactorToggleResponse
	authorizeURL string
	failures     map[string]error
}

func newFakeIdentityAPI() *fakeIdentityAPI {
	return &fakeIdentityAPI{
		args:     make(map[string][]any),
		failures: make(map[string]error),
	}
}

func (f *fakeIdentityAPI) failWith(call string, status int) {
	f.failures[call] = &backend.APIError{StatusCode: status, Message: http.StatusText(status)}
}

func (f *fakeIdentityAPI) record(call string, args ...any) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, call)
	f.args[call] = args
	return f.failures[call]
}

func (f *fakeIdentityAPI) called(call string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeIdentityAPI) totalCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.calls)
}

func (f *fakeIdentityAPI) lastArgs(call string) []any {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.args[call]
}

func (f *fakeIdentityAPI) Signup(_ context.Context, req backend.SignupRequest) (*backend.SignupResponse, error) {
	if err := f.record("Signup", req); err != nil {
		return nil, err
	}
	return f.signupResp, nil
}

func (f *fakeIdentityAPI) Login(_ context.Context, req backend.LoginRequest) (*backend.LoginResponse, error) {
	if err := f.record("Login", req); err != nil {
		return nil, err
	}
	return f.loginResp, nil
}

func (f *fakeIdentityAPI) VerifyTwoFactor(_ context.Context, code, tempToken string) (*backend.UserResponse, error) {
	if err := f.record("VerifyTwoFactor", code, tempToken); err != nil {
		return nil, err
	}
	return f.userResp, nil
}

func (f *fakeIdentityAPI) Logout(_ context.Context, userID string) error {
	return f.record("Logout", userID)
}

func (f *fakeIdentityAPI) ForgotPassword(_ context.Context, email string) error {
	return f.record("ForgotPassword", email)
}

func (f *fakeIdentityAPI) ResetPassword(_ context.Context, resetToken, password string) error {
	return f.record("ResetPassword", resetToken, password)
}

func (f *fakeIdentityAPI) ChangePassword(_ context.Context, userID, currentPassword, newPassword string) error {
	return f.record("ChangePassword", userID, currentPassword, newPassword)
}

func (f *fakeIdentityAPI) VerifyEmail(_ context.Context, userID, code string) (*backend.UserResponse, error) {
	if err := f.record("VerifyEmail", userID, code); err != nil {
		return nil, err
	}
	return f.userResp, nil
}

func (f *fakeIdentityAPI) ResendVerification(_ context.Context, userID string) error {
	return f.record("ResendVerification", userID)
}

func (f *fakeIdentityAPI) UpdateProfile(_ context.Context, userID string, update backend.ProfileUpdate) (*backend.UserResponse, error) {
	if err := f.record("UpdateProfile", userID, update); err != nil {
		return nil, err
	}
	return f.userResp, nil
}

func (f *fakeIdentityAPI) ToggleTwoFactor(_ context.Context, userID string, enabled bool, password string) (*backend.TwoFactorToggleResponse, error) {
	if err := f.record("ToggleTwoFactor", userID, enabled, password); err != nil {
		return nil, err
	}
	return f.toggleResp, nil
}

func (f *fakeIdentityAPI) DeleteAccount(_ context.Context, userID, password string) error {
	return f.record("DeleteAccount", userID, password)
}

func (f *fakeIdentityAPI) OAuthAuthorize(_ context.Context, provider, state, redirectURI string) (string, error) {
	if err := f.record("OAuthAuthorize", provider, state, redirectURI); err != nil {
		return "", err
	}
	return f.authorizeURL, nil
}

func (f *fakeIdentityAPI) OAuthCallback(_ context.Context, provider, code, redirectURI string) (*backend.UserResponse, error) {
	if err := f.record("OAuthCallback", provider, code, redirectURI); err != nil {
		return nil, err
	}
	return f.userResp, nil
}
