package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
)

const keyPrefix = "recipebox:login:"

// Config holds the login throttle parameters.
type Config struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// Limiter counts failed logins per email in fixed Redis windows.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// CheckLogin returns ErrRateLimited once the email has used up its failed attempts.
func (l *Limiter) CheckLogin(ctx context.Context, email string) error {
	count, err := l.attempts(ctx, email)
	if err != nil {
		return err
	}
	if count >= int64(l.config.MaxAttempts) {
		return apperrors.ErrRateLimited
	}
	return nil
}

// IncrementLogin records a failed attempt. The window starts at the first failure.
func (l *Limiter) IncrementLogin(ctx context.Context, email string) error {
	key := loginKey(email)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// ResetLogin clears the counter after a successful login.
func (l *Limiter) ResetLogin(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, loginKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// RetryAfter reports how long until the current window for email ends.
func (l *Limiter) RetryAfter(ctx context.Context, email string) (time.Duration, error) {
	ttl, err := l.redis.TTL(ctx, loginKey(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *Limiter) attempts(ctx context.Context, email string) (int64, error) {
	count, err := l.redis.Get(ctx, loginKey(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return count, nil
}

// loginKey hashes the normalised email so addresses never appear in Redis.
func loginKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return keyPrefix + hex.EncodeToString(sum[:])
}
