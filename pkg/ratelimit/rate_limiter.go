package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter configuration
type Config struct {
	Enabled           bool
	WindowDuration    time.Duration
	DefaultRequests   int
	AnalyticsRequests int
	WriteRequests     int
}

// RateLimiter enforces per-client fixed-window limits backed by Redis, so
// limits hold across replicas.
type RateLimiter struct {
	client *redis.Client
	config *Config
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// Allow increments the window counter for key and reports whether the
// request fits under limit, plus the remaining budget and window reset time.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int) (bool, int, time.Time, error) {
	window := rl.config.WindowDuration
	bucket := time.Now().Unix() / int64(window.Seconds())
	redisKey := fmt.Sprintf("registra:ratelimit:%s:%d", key, bucket)

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit incr failed: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, 0, time.Time{}, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	reset := time.Unix((bucket+1)*int64(window.Seconds()), 0)
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= limit, remaining, reset, nil
}

// LimitFor picks the request budget for a route: analytics reports are
// expensive to compute, writes touch the payment ledger, everything else
// gets the default.
func (rl *RateLimiter) LimitFor(method, path string) int {
	switch {
	case strings.Contains(path, "/analytics"):
		return rl.config.AnalyticsRequests
	case method != http.MethodGet:
		return rl.config.WriteRequests
	default:
		return rl.config.DefaultRequests
	}
}
