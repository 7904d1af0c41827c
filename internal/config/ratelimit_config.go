package config

import "time"

type RateLimit struct {
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginCooldown    time.Duration `env:"LOGIN_COOLDOWN" envDefault:"15m"`
}

var _ RateLimitConfig = RateLimit{}

func (r RateLimit) GetRedisAddr() string {
	return r.RedisAddr
}

func (r RateLimit) GetRedisPassword() string {
	return r.RedisPassword
}

func (r RateLimit) GetRedisDB() int {
	return r.RedisDB
}

func (r RateLimit) GetLoginMaxAttempts() int {
	return r.LoginMaxAttempts
}

func (r RateLimit) GetLoginCooldown() time.Duration {
	return r.LoginCooldown
}

// IsRateLimitingEnabled reports whether a Redis address was configured.
func (r RateLimit) IsRateLimitingEnabled() bool {
	return r.RedisAddr != ""
}

type Autosave struct {
	ReviewIdle time.Duration `env:"REVIEW_AUTOSAVE_IDLE" envDefault:"2s"`
}

var _ AutosaveConfig = Autosave{}

func (a Autosave) GetReviewAutosaveIdle() time.Duration {
	return a.ReviewIdle
}
