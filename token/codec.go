package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
	"github.com/jrsteele09/recipe-box/users"
)

// SessionData is the payload of a session token. ExpiresAt is in epoch milliseconds.
type SessionData struct {
	User      users.SessionUser `json:"user"`
	ExpiresAt int64             `json:"expiresAt"`
}

// Expiry returns ExpiresAt as a time.Time.
func (s SessionData) Expiry() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

// ExpiredAt reports whether the session is no longer valid at now.
func (s SessionData) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

type sessionClaims struct {
	User          users.SessionUser `json:"user"`
	SessionExpiry int64             `json:"expiresAt"`
	jwt.RegisteredClaims
}

// Codec turns SessionData into signed compact tokens and back.
type Codec struct {
	signer  Signer
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithNowFunc replaces the clock used for iat and expiry checks.
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(signer Signer, options ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("[NewCodec] signer is required")
	}
	c := &Codec{
		signer:  signer,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// NewHMACCodec is a convenience for an HS256 codec over secret.
func NewHMACCodec(secret string, options ...CodecOption) (*Codec, error) {
	signer, err := NewHMACSigner(secret)
	if err != nil {
		return nil, err
	}
	return NewCodec(signer, options...)
}

// Sign encodes data as a signed token. The JWT exp claim is expiresAt rounded up to the second.
func (c *Codec) Sign(data SessionData) (string, error) {
	if data.User.ID == "" {
		return "", errors.New("[Codec.Sign] session user id is required")
	}
	expSeconds := data.ExpiresAt / 1000
	if data.ExpiresAt%1000 != 0 {
		expSeconds++
	}
	claims := sessionClaims{
		User:          data.User,
		SessionExpiry: data.ExpiresAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   data.User.ID,
			IssuedAt:  jwt.NewNumericDate(c.nowFunc()),
			ExpiresAt: jwt.NewNumericDate(time.Unix(expSeconds, 0)),
		},
	}
	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Sign]")
	}
	return signed, nil
}

// Decode parses and checks a token. Rejections wrap ErrInvalidToken for an unreadable or
// badly signed token, ErrInvalidSession for a token without a user and ErrSessionExpired once
// either expiry has passed.
func (c *Codec) Decode(raw string) (*SessionData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if apperrors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionExpired, err)
	}
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	data := &SessionData{User: claims.User, ExpiresAt: claims.SessionExpiry}
	if data.User.ID == "" {
		return nil, apperrors.ErrInvalidSession
	}
	if data.ExpiredAt(c.nowFunc()) {
		return nil, apperrors.ErrSessionExpired
	}
	return data, nil
}

// Verify is Decode for callers that treat any rejection as "no session". The reason is logged.
func (c *Codec) Verify(raw string) (*SessionData, bool) {
	data, err := c.Decode(raw)
	switch {
	case err == nil:
		return data, true
	case apperrors.Is(err, apperrors.ErrInvalidSession):
		log.Warn().Err(err).Msg("session token rejected")
	default:
		log.Debug().Err(err).Msg("session token rejected")
	}
	return nil, false
}
