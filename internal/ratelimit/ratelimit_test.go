package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/myinvois/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluationLimiter_Disabled(t *testing.T) {
	l, err := NewEvaluationLimiter(nil, config.Config{})
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.False(t, l.Enabled())

	res, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewEvaluationLimiter_InvalidSettings(t *testing.T) {
	_, err := NewEvaluationLimiter(nil, config.Config{RateLimit: config.RateLimitConfig{Enabled: true, RedisAddr: " "}})
	assert.Error(t, err)

	_, err = NewEvaluationLimiter(nil, config.Config{RateLimit: config.RateLimitConfig{Enabled: true, RedisAddr: "localhost:6379"}})
	assert.Error(t, err)
}

func TestTokenBucket_NotConfigured(t *testing.T) {
	var bucket *TokenBucket
	res, err := bucket.Allow(context.Background(), "k", 1, 1)
	assert.Error(t, err)
	assert.False(t, res.Allowed)
	assert.Nil(t, NewTokenBucket(nil))
}

func TestBucketResult(t *testing.T) {
	res := bucketResult(false, 0.5, 1_000, 2, 10)
	assert.False(t, res.Allowed)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 250*time.Millisecond, res.RetryAfter)

	res = bucketResult(true, 7.9, 1_000, 2, 10)
	assert.True(t, res.Allowed)
	assert.Equal(t, 7, res.Remaining)
	assert.Zero(t, res.RetryAfter)
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, time.Second, defaultBucketTTL(0, 10))
	assert.Equal(t, 10*time.Second, defaultBucketTTL(10, 50))
	assert.Equal(t, time.Second, defaultBucketTTL(1000, 1))
}

func TestCastHelpers(t *testing.T) {
	assert.Equal(t, int64(3), castToInt(int64(3)))
	assert.Equal(t, int64(4), castToInt("4"))
	assert.Equal(t, 2.5, castToFloat("2.5"))
	assert.Equal(t, float64(2), castToFloat(int64(2)))
	assert.Zero(t, castToFloat(nil))
}
