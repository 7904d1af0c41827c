package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
)

// Load reads an optional .env file, parses the environment into Settings and validates the result.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Settings{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Settings
	if err := env.Parse(&cfg); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Validate fails when a value would leave the server unable to issue or verify sessions safely.
func (s Settings) Validate() error {
	if len(s.Session.Secret) < MinSessionSecretLength {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "SESSION_SECRET_KEY must be at least %d bytes", MinSessionSecretLength)
	}
	if s.Session.Duration <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "SESSION_DURATION must be positive")
	}
	u, err := url.Parse(s.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "API_BASE_URL %q is not an absolute URL", s.Backend.BaseURL)
	}
	if s.Backend.Timeout <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "API_TIMEOUT must be positive")
	}
	if s.RateLimit.IsRateLimitingEnabled() && (s.RateLimit.LoginMaxAttempts <= 0 || s.RateLimit.LoginCooldown <= 0) {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "LOGIN_MAX_ATTEMPTS and LOGIN_COOLDOWN must be positive")
	}
	if s.Autosave.ReviewIdle <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "REVIEW_AUTOSAVE_IDLE must be positive")
	}
	return nil
}
