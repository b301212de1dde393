package ratelimit

import (
	"net/http"
	"strconv"

	"registra/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware applies the rate limiter to every request. Redis failures
// fail open: a broken limiter must not take the API down with it.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		if rl == nil || !rl.config.Enabled {
			c.Next()
			return
		}

		limit := rl.LimitFor(c.Request.Method, c.Request.URL.Path)
		key := c.ClientIP() + ":" + c.FullPath()

		allowed, remaining, reset, err := rl.Allow(c.Request.Context(), key, limit)
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			log.LogRateLimitExceeded(c.Request.Context(), c.ClientIP(), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "rate limit exceeded, retry later",
			})
			return
		}

		c.Next()
	}
}
