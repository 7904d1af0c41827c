package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/recipe-box/backend"
	"github.com/jrsteele09/recipe-box/sessions"
)

// twoFactorTempTokenTTL is assumed when the identity API does not say when a temp token expires.
const twoFactorTempTokenTTL = 5 * time.Minute

// IdentityAPI is the remote identity service the actions delegate to.
type IdentityAPI interface {
	Signup(ctx context.Context, req backend.SignupRequest) (*backend.SignupResponse, error)
	Login(ctx context.Context, req backend.LoginRequest) (*backend.LoginResponse, error)
	VerifyTwoFactor(ctx context.Context, code, tempToken string) (*backend.UserResponse, error)
	Logout(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	VerifyEmail(ctx context.Context, userID, code string) (*backend.UserResponse, error)
	ResendVerification(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, update backend.ProfileUpdate) (*backend.UserResponse, error)
	ToggleTwoFactor(ctx context.Context, userID string, enabled bool, password string) (*backend.TwoFactorToggleResponse, error)
	DeleteAccount(ctx context.Context, userID, password string) error
	OAuthAuthorize(ctx context.Context, provider, state, redirectURI string) (string, error)
	OAuthCallback(ctx context.Context, provider, code, redirectURI string) (*backend.UserResponse, error)
}

var _ IdentityAPI = (*backend.Client)(nil)

// LoginLimiter throttles failed logins per email.
type LoginLimiter interface {
	CheckLogin(ctx context.Context, email string) error
	IncrementLogin(ctx context.Context, email string) error
	ResetLogin(ctx context.Context, email string) error
	RetryAfter(ctx context.Context, email string) (time.Duration, error)
}

// Service runs the auth actions: validate, call the identity API, then mutate the session.
type Service struct {
	api       IdentityAPI
	sessions  *sessions.Service
	validator *Validator
	limiter   LoginLimiter
	appURL    string
	nowTime   func() time.Time
	newState  func() string
}

type ServiceOption func(*Service)

// WithLoginLimiter enables failed-login throttling.
func WithLoginLimiter(l LoginLimiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithAppURL sets the public base URL used to build OAuth redirect URIs.
func WithAppURL(appURL string) ServiceOption {
	return func(s *Service) {
		s.appURL = strings.TrimRight(appURL, "/")
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithStateGenerator replaces the OAuth state nonce generator (primarily for testing)
func WithStateGenerator(gen func() string) ServiceOption {
	return func(s *Service) {
		s.newState = gen
	}
}

func NewService(api IdentityAPI, sessionService *sessions.Service, options ...ServiceOption) (*Service, error) {
	if api == nil {
		return nil, errors.New("[NewService] identity API is required")
	}
	if sessionService == nil {
		return nil, errors.New("[NewService] session service is required")
	}

	s := &Service{
		api:       api,
		sessions:  sessionService,
		validator: NewValidator(),
		appURL:    "http://localhost:8080",
		nowTime:   time.Now,
		newState:  func() string { return uuid.NewString() },
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Sessions exposes the session service the actions write to.
func (s *Service) Sessions() *sessions.Service {
	return s.sessions
}
