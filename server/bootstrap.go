package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/backend"
	"github.com/jrsteele09/recipe-box/internal/config"
	"github.com/jrsteele09/recipe-box/ratelimit"
	"github.com/jrsteele09/recipe-box/sessions"
	"github.com/jrsteele09/recipe-box/token"
)

// Bootstrap builds the server and every service it depends on from cfg. Close the returned
// server to flush review drafts and release its connections.
func Bootstrap(ctx context.Context, cfg config.Config) (*Server, error) {
	codec, err := token.NewHMACCodec(cfg.GetSessionSecret())
	if err != nil {
		return nil, fmt.Errorf("[Bootstrap] session codec: %w", err)
	}
	sessionService, err := sessions.NewService(codec, sessions.WithDuration(cfg.GetSessionDuration()))
	if err != nil {
		return nil, fmt.Errorf("[Bootstrap] session service: %w", err)
	}

	identity, err := backend.New(cfg.GetAPIBaseURL(), cfg.GetAPISecretKey(), backend.WithTimeout(cfg.GetAPITimeout()))
	if err != nil {
		return nil, fmt.Errorf("[Bootstrap] identity API client: %w", err)
	}

	authOptions := []auth.ServiceOption{auth.WithAppURL(cfg.GetAppURL())}
	var redisClient *redis.Client
	if cfg.IsRateLimitingEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.GetRedisAddr()).Msg("Redis unreachable, login throttling will allow attempts until it recovers")
		}
		limiter := ratelimit.New(redisClient, ratelimit.Config{
			MaxAttempts: cfg.GetLoginMaxAttempts(),
			Cooldown:    cfg.GetLoginCooldown(),
		})
		authOptions = append(authOptions, auth.WithLoginLimiter(limiter))
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	authService, err := auth.NewService(identity, sessionService, authOptions...)
	if err != nil {
		return nil, fmt.Errorf("[Bootstrap] auth service: %w", err)
	}

	drafts, err := NewReviewDrafts(identity, cfg.GetReviewAutosaveIdle())
	if err != nil {
		return nil, fmt.Errorf("[Bootstrap] review drafts: %w", err)
	}

	s, err := New(cfg, sessionService, authService, drafts)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		s.onClose(func(context.Context) error { return redisClient.Close() })
	}

	log.Info().
		Str("env", cfg.GetEnv()).
		Str("appURL", cfg.GetAppURL()).
		Str("identityAPI", cfg.GetAPIBaseURL()).
		Dur("sessionDuration", sessionService.Duration()).
		Bool("loginThrottle", redisClient != nil).
		Msg("Bootstrap complete")
	return s, nil
}
