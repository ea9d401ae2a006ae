package middleware

import (
	"net/http"
	"time"

	"InterviewPractice_FeedbackService/internal/apperrors"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit applies a token bucket per client IP. Idle buckets are dropped
// after ttl.
func RateLimit(requestsPerSecond float64, burst int, ttl time.Duration) gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(requestsPerSecond), burst), ttl
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperrors.RateLimited().Body())
		},
	)
}
