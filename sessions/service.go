package sessions

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
	"github.com/jrsteele09/recipe-box/token"
	"github.com/jrsteele09/recipe-box/users"
)

// DefaultDuration is the lifetime given to a new session.
const DefaultDuration = 7 * 24 * time.Hour

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(data token.SessionData) (string, error)
	Verify(raw string) (*token.SessionData, bool)
}

// Service issues, reads and refreshes sessions held in a Store.
type Service struct {
	codec    TokenCodec
	duration time.Duration
	nowFunc  func() time.Time
}

type ServiceOption func(*Service)

func WithDuration(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.duration = d
	}
}

func WithNowTime(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(codec TokenCodec, options ...ServiceOption) (*Service, error) {
	if codec == nil {
		return nil, errors.New("[NewService] token codec is required")
	}
	s := &Service{
		codec:    codec,
		duration: DefaultDuration,
		nowFunc:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.duration <= 0 {
		return nil, errors.New("[NewService] session duration must be positive")
	}
	return s, nil
}

// Duration is the lifetime given to new sessions and the cookie max age.
func (s *Service) Duration() time.Duration {
	return s.duration
}

// CreateSession mints a token for user expiring one session duration from now. It does not persist it.
func (s *Service) CreateSession(user users.SessionUser) (string, error) {
	data := token.SessionData{
		User:      user,
		ExpiresAt: s.nowFunc().Add(s.duration).UnixMilli(),
	}
	raw, err := s.codec.Sign(data)
	if err != nil {
		return "", errors.Wrap(err, "[Service.CreateSession]")
	}
	return raw, nil
}

// Persist writes raw to the store with the session duration as max age.
func (s *Service) Persist(store Store, raw string) {
	store.Set(raw, s.duration)
}

// StartSession creates and persists a session for user.
func (s *Service) StartSession(store Store, user users.SessionUser) error {
	raw, err := s.CreateSession(user)
	if err != nil {
		return err
	}
	s.Persist(store, raw)
	return nil
}

// Clear removes any session from the store.
func (s *Service) Clear(store Store) {
	store.Clear()
}

// GetSession returns the verified session, or nil when there is none or it is invalid.
func (s *Service) GetSession(store Store) *token.SessionData {
	raw, ok := store.Read()
	if !ok {
		return nil
	}
	data, ok := s.codec.Verify(raw)
	if !ok {
		return nil
	}
	return data
}

func (s *Service) GetCurrentUser(store Store) *users.SessionUser {
	data := s.GetSession(store)
	if data == nil {
		return nil
	}
	u := data.User
	return &u
}

func (s *Service) IsAuthenticated(store Store) bool {
	return s.GetSession(store) != nil
}

func (s *Service) IsAdmin(store Store) bool {
	u := s.GetCurrentUser(store)
	return u != nil && u.IsAdmin()
}

// RefreshSession re-mints the current session with a fresh expiry for the same user snapshot.
// It returns false and leaves the store untouched when there is no valid session.
func (s *Service) RefreshSession(store Store) (bool, error) {
	data := s.GetSession(store)
	if data == nil {
		return false, nil
	}
	raw, err := s.CreateSession(data.User)
	if err != nil {
		return false, errors.Wrap(err, "[Service.RefreshSession]")
	}
	s.Persist(store, raw)
	log.Debug().Str("userID", data.User.ID).Msg("session refreshed")
	return true, nil
}

func (s *Service) RequireAuth(store Store) (users.SessionUser, error) {
	u := s.GetCurrentUser(store)
	if u == nil {
		return users.SessionUser{}, apperrors.ErrUnauthenticated
	}
	return *u, nil
}

func (s *Service) RequireAdmin(store Store) (users.SessionUser, error) {
	u, err := s.RequireAuth(store)
	if err != nil {
		return u, err
	}
	if !u.IsAdmin() {
		return users.SessionUser{}, apperrors.ErrForbidden
	}
	return u, nil
}

func (s *Service) RequireVerifiedEmail(store Store) (users.SessionUser, error) {
	u, err := s.RequireAuth(store)
	if err != nil {
		return u, err
	}
	if !u.EmailVerified {
		return users.SessionUser{}, apperrors.ErrEmailNotVerified
	}
	return u, nil
}

type sessionContextKey struct{}

// NewContext returns a copy of ctx carrying data.
func NewContext(ctx context.Context, data *token.SessionData) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, data)
}

// FromContext returns the session attached by NewContext, if any.
func FromContext(ctx context.Context) (*token.SessionData, bool) {
	data, ok := ctx.Value(sessionContextKey{}).(*token.SessionData)
	return data, ok && data != nil
}
