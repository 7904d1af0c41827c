package config

import "time"

// MinSessionSecretLength is the minimum size in bytes of the HS256 session signing key.
const MinSessionSecretLength = 32

type Session struct {
	Secret   string        `env:"SESSION_SECRET_KEY"`
	Duration time.Duration `env:"SESSION_DURATION" envDefault:"168h"`
}

var _ SessionConfig = Session{}

func (s Session) GetSessionSecret() string {
	return s.Secret
}

func (s Session) GetSessionDuration() time.Duration {
	return s.Duration
}
