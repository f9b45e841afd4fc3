package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/myinvois/internal/config"
	"go.uber.org/fx"
)

const keyEvaluateClient = "myinvois:evaluate:client:%s"

// EvaluationLimiter throttles invoice evaluation per client. A nil limiter allows
// everything.
type EvaluationLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewEvaluationLimiter returns nil when rate limiting is disabled.
func NewEvaluationLimiter(lc fx.Lifecycle, cfg config.Config) (*EvaluationLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.EvaluateRate <= 0 || limitCfg.EvaluateBurst <= 0 {
		return nil, errors.New("evaluate rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})
	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}

	return newEvaluationLimiter(NewTokenBucket(client), limitCfg.EvaluateRate, limitCfg.EvaluateBurst), nil
}

func newEvaluationLimiter(bucket *TokenBucket, rate float64, burst int) *EvaluationLimiter {
	return &EvaluationLimiter{bucket: bucket, rate: rate, burst: burst}
}

func (l *EvaluationLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *EvaluationLimiter) Allow(ctx context.Context, clientKey string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		clientKey = "anonymous"
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyEvaluateClient, clientKey), l.rate, l.burst)
}
