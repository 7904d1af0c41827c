package auth_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/backend"
	"github.com/jrsteele09/recipe-box/internal/utils"
	"github.com/jrsteele09/recipe-box/ratelimit"
	"github.com/jrsteele09/recipe-box/sessions"
	"github.com/jrsteele09/recipe-box/sessions/storefake"
	"github.com/jrsteele09/recipe-box/token"
	"github.com/jrsteele09/recipe-box/users"
)

const (
	secretStr        = "0123456789abcdef0123456789abcdef"
	testAppURL       = "https://recipes.example.com"
	testState        = "state-123"
	testUserID       = "user-1"
	testUserEmail    = "julia@example.com"
	testUserPassword = "Souffle123"
	testNewPassword  = "Bearnaise456"
)

var testUser = users.User{
	ID:            testUserID,
	Email:         testUserEmail,
	FirstName:     "Julia",
	LastName:      "Child",
	Role:          users.RoleUser,
	EmailVerified: true,
}

// testFixture holds all test dependencies
type testFixture struct {
	now      time.Time
	api      *fakeIdentityAPI
	sessions *sessions.Service
	service  *auth.Service
}

func (f *testFixture) Now() time.Time { return f.now }

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T, options ...auth.ServiceOption) *testFixture {
	t.Helper()
	f := &testFixture{
		now: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		api: newFakeIdentityAPI(),
	}

	codec, err := token.NewHMACCodec(secretStr, token.WithNowFunc(f.Now))
	require.NoError(t, err)
	f.sessions, err = sessions.NewService(codec, sessions.WithNowTime(f.Now))
	require.NoError(t, err)

	options = append([]auth.ServiceOption{
		auth.WithNowTime(f.Now),
		auth.WithAppURL(testAppURL + "/"),
		auth.WithStateGenerator(func() string { return testState }),
	}, options...)
	f.service, err = auth.NewService(f.api, f.sessions, options...)
	require.NoError(t, err)
	return f
}

func (f *testFixture) signedIn(t *testing.T, u users.User) *storefake.MemoryStore {
	t.Helper()
	store := storefake.NewMemoryStore()
	require.NoError(t, f.sessions.StartSession(store, u.ToSessionUser()))
	store.Writes = 0
	return store
}

func validSignup() auth.SignupInput {
	return auth.SignupInput{
		Email:           "  Julia@Example.com ",
		Password:        testUserPassword,
		ConfirmPassword: testUserPassword,
		FirstName:       " Julia ",
		LastName:        "Child",
		AcceptTerms:     true,
	}
}

func TestNewService(t *testing.T) {
	_, err := auth.NewService(nil, nil)
	require.Error(t, err)

	f := setupTestFixture(t)
	_, err = auth.NewService(f.api, nil)
	require.Error(t, err)
	require.Equal(t, f.sessions, f.service.Sessions())
}

func TestSignup(t *testing.T) {
	t.Run("invalid input never reaches the API", func(t *testing.T) {
		f := setupTestFixture(t)
		store := storefake.NewMemoryStore()
		in := validSignup()
		in.Email = "not-an-email"
		in.ConfirmPassword = "Different123"
		in.AcceptTerms = false

		res := f.service.Signup(context.Background(), store, in)
		require.False(t, res.Success)
		require.Equal(t, auth.CodeValidation, res.Code)
		require.Contains(t, res.FieldErrors, "email")
		require.Contains(t, res.FieldErrors, "confirmPassword")
		require.Contains(t, res.FieldErrors, "acceptTerms")
		require.Equal(t, 0, f.api.totalCalls())
		require.Equal(t, 0, store.Writes)
	})

	t.Run("verification required means no session", func(t *testing.T) {
		f := setupTestFixture(t)
		unverified := testUser
		unverified.EmailVerified = false
		f.api.signupResp = &backend.SignupResponse{User: unverified, RequiresEmailVerification: true}
		store := storefake.NewMemoryStore()

		res := f.service.Signup(context.Background(), store, validSignup())
		require.True(t, res.Success)
		require.True(t, res.Data.RequiresEmailVerification)
		require.Equal(t, testUserID, res.Data.UserID)
		require.NotEmpty(t, res.Message)
		require.False(t, f.sessions.IsAuthenticated(store))

		req := f.api.lastArgs("Signup")[0].(backend.SignupRequest)
		require.Equal(t, "julia@example.com", req.Email)
		require.Equal(t, "Julia", req.FirstName)
	})

	t.Run("no verification required starts a session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.signupResp = &backend.SignupResponse{User: testUser}
		store := storefake.NewMemoryStore()

		res := f.service.Signup(context.Background(), store, validSignup())
		require.True(t, res.Success)
		require.Equal(t, testUserID, f.sessions.GetCurrentUser(store).ID)
	})

	t.Run("existing account", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("Signup", http.StatusConflict)
		store := storefake.NewMemoryStore()

		res := f.service.Signup(context.Background(), store, validSignup())
		require.False(t, res.Success)
		require.Equal(t, auth.CodeAccountExists, res.Code)
		require.Equal(t, 0, store.Writes)
	})

	t.Run("unprocessable data", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("Signup", http.StatusUnprocessableEntity)

		res := f.service.Signup(context.Background(), storefake.NewMemoryStore(), validSignup())
		require.Equal(t, auth.CodeValidation, res.Code)
	})

	t.Run("unexpected failure is masked", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failures["Signup"] = errors.New("dial tcp: connection refused")

		res := f.service.Signup(context.Background(), storefake.NewMemoryStore(), validSignup())
		require.False(t, res.Success)
		require.Equal(t, auth.CodeUnexpected, res.Code)
		require.NotContains(t, res.Error, "connection refused")
	})
}

func TestLogin(t *testing.T) {
	loginInput := auth.LoginInput{Email: testUserEmail, Password: testUserPassword}

	t.Run("success creates a session", func(t *testing.T) {
		f := setupTestFixture(t)
		u := testUser
		f.api.loginResp = &backend.LoginResponse{User: &u}
		store := storefake.NewMemoryStore()

		res := f.service.Login(context.Background(), store, loginInput)
		require.True(t, res.Success)
		require.False(t, res.Data.RequiresTwoFactor)
		require.Equal(t, testUserID, res.Data.UserID)
		require.Equal(t, 1, store.Writes)
		require.Equal(t, sessions.DefaultDuration, store.MaxAge())
	})

	t.Run("wrong credentials", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("Login", http.StatusUnauthorized)
		store := storefake.NewMemoryStore()

		res := f.service.Login(context.Background(), store, loginInput)
		require.False(t, res.Success)
		require.Equal(t, auth.CodeInvalidCredentials, res.Code)
		require.Equal(t, 0, store.Writes)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("Login", http.StatusForbidden)

		res := f.service.Login(context.Background(), storefake.NewMemoryStore(), loginInput)
		require.Equal(t, auth.CodeAccountDisabled, res.Code)
	})

	t.Run("two factor returns temp token and no session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.loginResp = &backend.LoginResponse{RequiresTwoFactor: true, TempToken: "temp-1"}
		store := storefake.NewMemoryStore()

		res := f.service.Login(context.Background(), store, loginInput)
		require.True(t, res.Success)
		require.True(t, res.Data.RequiresTwoFactor)
		require.Equal(t, "temp-1", res.Data.TempToken)
		require.NotNil(t, res.Data.TempTokenExpiresAt)
		require.True(t, res.Data.TempTokenExpiresAt.Equal(f.now.Add(5*time.Minute)))
		require.Equal(t, 0, store.Writes)
		require.False(t, f.sessions.IsAuthenticated(store))
	})

	t.Run("two factor keeps the API expiry", func(t *testing.T) {
		f := setupTestFixture(t)
		expires := f.now.Add(2 * time.Minute)
		f.api.loginResp = &backend.LoginResponse{RequiresTwoFactor: true, TempToken: "temp-1", TempTokenExpiresAt: utils.Ptr(expires)}

		res := f.service.Login(context.Background(), storefake.NewMemoryStore(), loginInput)
		require.True(t, res.Data.TempTokenExpiresAt.Equal(expires))
	})

	t.Run("empty password", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.Login(context.Background(), storefake.NewMemoryStore(), auth.LoginInput{Email: testUserEmail})
		require.Equal(t, auth.CodeValidation, res.Code)
		require.Contains(t, res.FieldErrors, "password")
		require.Equal(t, 0, f.api.totalCalls())
	})
}

func TestLoginThrottle(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := ratelimit.New(rdb, ratelimit.Config{MaxAttempts: 2, Cooldown: time.Minute})
	f := setupTestFixture(t, auth.WithLoginLimiter(limiter))
	f.api.failWith("Login", http.StatusUnauthorized)
	in := auth.LoginInput{Email: testUserEmail, Password: "WrongPass1"}

	for i := 0; i < 2; i++ {
		res := f.service.Login(context.Background(), storefake.NewMemoryStore(), in)
		require.Equal(t, auth.CodeInvalidCredentials, res.Code)
	}

	res := f.service.Login(context.Background(), storefake.NewMemoryStore(), in)
	require.Equal(t, auth.CodeRateLimited, res.Code)
	require.Equal(t, 2, f.api.called("Login"))
	require.Equal(t, 60, res.RetryAfter)

	t.Run("redis outage fails open", func(t *testing.T) {
		mr.Close()
		u := testUser
		f.api.failures = map[string]error{}
		f.api.loginResp = &backend.LoginResponse{User: &u}

		res := f.service.Login(context.Background(), storefake.NewMemoryStore(), in)
		require.True(t, res.Success)
	})
}

func TestVerifyTwoFactor(t *testing.T) {
	t.Run("bad code format", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.VerifyTwoFactor(context.Background(), storefake.NewMemoryStore(), auth.VerifyTwoFactorInput{Code: "12a456", TempToken: "temp-1"})
		require.Equal(t, auth.CodeValidation, res.Code)
		require.Contains(t, res.FieldErrors, "code")
		require.Equal(t, 0, f.api.totalCalls())
	})

	t.Run("missing temp token", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.VerifyTwoFactor(context.Background(), storefake.NewMemoryStore(), auth.VerifyTwoFactorInput{Code: "123456"})
		require.Contains(t, res.FieldErrors, "tempToken")
	})

	t.Run("rejected code", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("VerifyTwoFactor", http.StatusUnauthorized)
		store := storefake.NewMemoryStore()

		res := f.service.VerifyTwoFactor(context.Background(), store, auth.VerifyTwoFactorInput{Code: "123456", TempToken: "temp-1"})
		require.Equal(t, auth.CodeTwoFactorInvalid, res.Code)
		require.Equal(t, 0, store.Writes)
	})

	t.Run("success creates a session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.userResp = &backend.UserResponse{User: testUser}
		store := storefake.NewMemoryStore()

		res := f.service.VerifyTwoFactor(context.Background(), store, auth.VerifyTwoFactorInput{Code: " 123456 ", TempToken: "temp-1"})
		require.True(t, res.Success)
		require.True(t, f.sessions.IsAuthenticated(store))
		require.Equal(t, []any{"123456", "temp-1"}, f.api.lastArgs("VerifyTwoFactor"))
	})
}

func TestLogout(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		f := setupTestFixture(t)
		store := f.signedIn(t, testUser)

		res := f.service.Logout(context.Background(), store)
		require.True(t, res.Success)
		require.Equal(t, []any{testUserID}, f.api.lastArgs("Logout"))
		require.Equal(t, 1, store.Clears)
		require.False(t, f.sessions.IsAuthenticated(store))
	})

	t.Run("remote failure is swallowed", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("Logout", http.StatusInternalServerError)
		store := f.signedIn(t, testUser)

		res := f.service.Logout(context.Background(), store)
		require.True(t, res.Success)
		require.Equal(t, 1, store.Clears)
	})

	t.Run("anonymous skips the API", func(t *testing.T) {
		f := setupTestFixture(t)
		store := storefake.NewMemoryStore()

		res := f.service.Logout(context.Background(), store)
		require.True(t, res.Success)
		require.Equal(t, 0, f.api.totalCalls())
		require.Equal(t, 1, store.Clears)
	})
}

func TestForgotPassword(t *testing.T) {
	f := setupTestFixture(t)

	ok := f.service.ForgotPassword(context.Background(), auth.ForgotPasswordInput{Email: testUserEmail})
	require.True(t, ok.Success)

	f.api.failWith("ForgotPassword", http.StatusNotFound)
	unknown := f.service.ForgotPassword(context.Background(), auth.ForgotPasswordInput{Email: "nobody@example.com"})
	require.True(t, unknown.Success)
	require.Equal(t, ok.Message, unknown.Message)

	bad := f.service.ForgotPassword(context.Background(), auth.ForgotPasswordInput{Email: "nope"})
	require.False(t, bad.Success)
	require.Contains(t, bad.FieldErrors, "email")
	require.Equal(t, 2, f.api.totalCalls())
}

func TestResetPassword(t *testing.T) {
	in := auth.ResetPasswordInput{Token: "reset-1", Password: testNewPassword, ConfirmPassword: testNewPassword}

	t.Run("success", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ResetPassword(context.Background(), in)
		require.True(t, res.Success)
		require.Equal(t, []any{"reset-1", testNewPassword}, f.api.lastArgs("ResetPassword"))
	})

	t.Run("expired link", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusGone} {
			f := setupTestFixture(t)
			f.api.failWith("ResetPassword", status)
			res := f.service.ResetPassword(context.Background(), in)
			require.Equal(t, auth.CodeLinkExpired, res.Code)
			require.Contains(t, res.Error, "Request a new one")
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		f := setupTestFixture(t)
		bad := in
		bad.ConfirmPassword = "Other12345"
		res := f.service.ResetPassword(context.Background(), bad)
		require.Equal(t, "Passwords do not match", res.FieldErrors["confirmPassword"])
		require.Equal(t, 0, f.api.totalCalls())
	})
}

func TestChangePassword(t *testing.T) {
	in := auth.ChangePasswordInput{CurrentPassword: testUserPassword, NewPassword: testNewPassword, ConfirmPassword: testNewPassword}

	t.Run("requires a session", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ChangePassword(context.Background(), storefake.NewMemoryStore(), in)
		require.Equal(t, auth.CodeUnauthenticated, res.Code)
		require.Equal(t, 0, f.api.totalCalls())
	})

	t.Run("new must differ from current", func(t *testing.T) {
		f := setupTestFixture(t)
		same := auth.ChangePasswordInput{CurrentPassword: testUserPassword, NewPassword: testUserPassword, ConfirmPassword: testUserPassword}
		res := f.service.ChangePassword(context.Background(), f.signedIn(t, testUser), same)
		require.Contains(t, res.FieldErrors, "newPassword")
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("ChangePassword", http.StatusUnauthorized)
		res := f.service.ChangePassword(context.Background(), f.signedIn(t, testUser), in)
		require.Equal(t, auth.CodeWrongPassword, res.Code)
	})

	t.Run("success", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ChangePassword(context.Background(), f.signedIn(t, testUser), in)
		require.True(t, res.Success)
		require.Equal(t, []any{testUserID, testUserPassword, testNewPassword}, f.api.lastArgs("ChangePassword"))
	})
}

func TestVerifyEmail(t *testing.T) {
	unverified := testUser
	unverified.EmailVerified = false

	t.Run("re-mints with verified flag", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.userResp = &backend.UserResponse{User: unverified}
		store := f.signedIn(t, unverified)

		res := f.service.VerifyEmail(context.Background(), store, auth.VerifyEmailInput{Code: "654321"})
		require.True(t, res.Success)
		require.Equal(t, 1, store.Writes)
		require.True(t, f.sessions.GetCurrentUser(store).EmailVerified)
	})

	t.Run("rejected code keeps the old session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("VerifyEmail", http.StatusUnauthorized)
		store := f.signedIn(t, unverified)

		res := f.service.VerifyEmail(context.Background(), store, auth.VerifyEmailInput{Code: "654321"})
		require.Equal(t, auth.CodeCodeInvalid, res.Code)
		require.Equal(t, 0, store.Writes)
		require.False(t, f.sessions.GetCurrentUser(store).EmailVerified)
	})
}

func TestResendVerification(t *testing.T) {
	t.Run("already verified fails fast", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ResendVerification(context.Background(), f.signedIn(t, testUser))
		require.False(t, res.Success)
		require.Equal(t, auth.CodeAlreadyVerified, res.Code)
		require.Equal(t, 0, f.api.totalCalls())
	})

	t.Run("unverified user", func(t *testing.T) {
		f := setupTestFixture(t)
		unverified := testUser
		unverified.EmailVerified = false
		res := f.service.ResendVerification(context.Background(), f.signedIn(t, unverified))
		require.True(t, res.Success)
		require.Equal(t, 1, f.api.called("ResendVerification"))
	})

	t.Run("anonymous", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ResendVerification(context.Background(), storefake.NewMemoryStore())
		require.Equal(t, auth.CodeUnauthenticated, res.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	in := auth.UpdateProfileInput{FirstName: "Julie", LastName: "Child", Email: testUserEmail, Phone: "06 12 34 56 78", Bio: "Cooks"}

	t.Run("re-mints from returned user", func(t *testing.T) {
		f := setupTestFixture(t)
		updated := testUser
		updated.FirstName = "Julie"
		f.api.userResp = &backend.UserResponse{User: updated}
		store := f.signedIn(t, testUser)

		res := f.service.UpdateProfile(context.Background(), store, in)
		require.True(t, res.Success)
		require.Equal(t, "Julie", f.sessions.GetCurrentUser(store).FirstName)

		sent := f.api.lastArgs("UpdateProfile")[1].(backend.ProfileUpdate)
		require.Equal(t, "0612345678", sent.Phone)
	})

	t.Run("invalid phone and long bio", func(t *testing.T) {
		f := setupTestFixture(t)
		bad := in
		bad.Phone = "12345"
		bad.Bio = strings.Repeat("a", 501)

		res := f.service.UpdateProfile(context.Background(), f.signedIn(t, testUser), bad)
		require.Contains(t, res.FieldErrors, "phone")
		require.Contains(t, res.FieldErrors, "bio")
		require.Equal(t, 0, f.api.totalCalls())
	})

	t.Run("empty phone is allowed", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.userResp = &backend.UserResponse{User: testUser}
		ok := in
		ok.Phone = ""
		res := f.service.UpdateProfile(context.Background(), f.signedIn(t, testUser), ok)
		require.True(t, res.Success)
	})

	t.Run("email in use", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("UpdateProfile", http.StatusConflict)
		res := f.service.UpdateProfile(context.Background(), f.signedIn(t, testUser), in)
		require.Equal(t, auth.CodeEmailInUse, res.Code)
	})
}

func TestToggleTwoFactor(t *testing.T) {
	enabled := utils.Ptr(true)

	t.Run("enabled flag is required", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.ToggleTwoFactor(context.Background(), f.signedIn(t, testUser), auth.ToggleTwoFactorInput{Password: testUserPassword})
		require.Contains(t, res.FieldErrors, "enabled")
	})

	t.Run("enable re-mints the session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.toggleResp = &backend.TwoFactorToggleResponse{Enabled: true, QRCode: "qr", BackupCodes: []string{"a1", "b2"}}
		store := f.signedIn(t, testUser)

		res := f.service.ToggleTwoFactor(context.Background(), store, auth.ToggleTwoFactorInput{Enabled: enabled, Password: testUserPassword})
		require.True(t, res.Success)
		require.Equal(t, "qr", res.Data.QRCode)
		require.Equal(t, []string{"a1", "b2"}, res.Data.BackupCodes)
		require.True(t, f.sessions.GetCurrentUser(store).TwoFactorEnabled)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("ToggleTwoFactor", http.StatusUnauthorized)
		res := f.service.ToggleTwoFactor(context.Background(), f.signedIn(t, testUser), auth.ToggleTwoFactorInput{Enabled: enabled, Password: "nope"})
		require.Equal(t, auth.CodeWrongPassword, res.Code)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("success clears the session", func(t *testing.T) {
		f := setupTestFixture(t)
		store := f.signedIn(t, testUser)

		res := f.service.DeleteAccount(context.Background(), store, auth.DeleteAccountInput{Password: testUserPassword})
		require.True(t, res.Success)
		require.Equal(t, testUserID, res.Data.DeletedUserID)
		require.Equal(t, 1, store.Clears)
	})

	t.Run("wrong password keeps the session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("DeleteAccount", http.StatusUnauthorized)
		store := f.signedIn(t, testUser)

		res := f.service.DeleteAccount(context.Background(), store, auth.DeleteAccountInput{Password: "nope"})
		require.Equal(t, auth.CodeWrongPassword, res.Code)
		require.Equal(t, 0, store.Clears)
		require.True(t, f.sessions.IsAuthenticated(store))
	})
}

func TestOAuth(t *testing.T) {
	t.Run("initiate stores state and returns url", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.authorizeURL = "https://github.com/login/oauth/authorize?state=" + testState
		store := storefake.NewMemoryStore()

		res := f.service.InitiateOAuth(context.Background(), store, "github")
		require.True(t, res.Success)
		require.Equal(t, f.api.authorizeURL, res.Data.URL)
		require.Equal(t, []any{"github", testState, testAppURL + "/auth/callback/github"}, f.api.lastArgs("OAuthAuthorize"))

		state, ok := store.ReadOAuthState("github")
		require.True(t, ok)
		require.Equal(t, testState, state)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		f := setupTestFixture(t)
		res := f.service.InitiateOAuth(context.Background(), storefake.NewMemoryStore(), "myspace")
		require.Contains(t, res.FieldErrors, "provider")
		require.Equal(t, 0, f.api.totalCalls())
	})

	t.Run("initiate failure discards state", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.failWith("OAuthAuthorize", http.StatusBadGateway)
		store := storefake.NewMemoryStore()

		res := f.service.InitiateOAuth(context.Background(), store, "google")
		require.False(t, res.Success)
		_, ok := store.ReadOAuthState("google")
		require.False(t, ok)
	})

	t.Run("callback with matching state signs in", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.userResp = &backend.UserResponse{User: testUser}
		store := storefake.NewMemoryStore()
		store.SetOAuthState("github", testState)

		res := f.service.CompleteOAuth(context.Background(), store, auth.OAuthCallbackInput{Provider: "github", Code: "code-1", State: testState})
		require.True(t, res.Success)
		require.True(t, f.sessions.IsAuthenticated(store))
		_, ok := store.ReadOAuthState("github")
		require.False(t, ok)
	})

	t.Run("callback with wrong state is refused and state is consumed", func(t *testing.T) {
		f := setupTestFixture(t)
		store := storefake.NewMemoryStore()
		store.SetOAuthState("github", testState)

		res := f.service.CompleteOAuth(context.Background(), store, auth.OAuthCallbackInput{Provider: "github", Code: "code-1", State: "forged"})
		require.Equal(t, auth.CodeOAuthState, res.Code)
		require.Equal(t, 0, f.api.totalCalls())
		_, ok := store.ReadOAuthState("github")
		require.False(t, ok)

		replay := f.service.CompleteOAuth(context.Background(), store, auth.OAuthCallbackInput{Provider: "github", Code: "code-1", State: testState})
		require.Equal(t, auth.CodeOAuthState, replay.Code)
	})
}

func TestMeAndRefresh(t *testing.T) {
	f := setupTestFixture(t)
	require.Nil(t, f.service.Me(storefake.NewMemoryStore()))

	anonymous := f.service.RefreshSession(storefake.NewMemoryStore())
	require.Equal(t, auth.CodeUnauthenticated, anonymous.Code)

	store := f.signedIn(t, testUser)
	require.Equal(t, testUserID, f.service.Me(store).ID)

	f.now = f.now.Add(24 * time.Hour)
	res := f.service.RefreshSession(store)
	require.True(t, res.Success)
	require.Equal(t, 1, store.Writes)
	require.Equal(t, f.now.Add(sessions.DefaultDuration).UnixMilli(), f.sessions.GetSession(store).ExpiresAt)
}
