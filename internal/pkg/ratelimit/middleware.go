package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
)

// Middleware creates a rate limiting middleware for Gin, keyed by client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
