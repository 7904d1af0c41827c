package config

import (
	"time"
)

type Config interface {
	EnvConfig
	CorsConfig
	SessionConfig
	BackendConfig
	RateLimitConfig
	AutosaveConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppURL() string
	GetEnv() string
	GetLogLevel() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedOrigins() []string
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionDuration() time.Duration
}

type BackendConfig interface {
	GetAPIBaseURL() string
	GetAPISecretKey() string
	GetAPITimeout() time.Duration
}

type RateLimitConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetLoginMaxAttempts() int
	GetLoginCooldown() time.Duration
	IsRateLimitingEnabled() bool
}

type AutosaveConfig interface {
	GetReviewAutosaveIdle() time.Duration
}

// Settings is the concrete Config populated from the environment.
type Settings struct {
	EnvVars
	Cors
	Session
	Backend
	RateLimit
	Autosave
}

var _ Config = Settings{}
