package server

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EvaluateRateLimit throttles evaluation per client IP. Limiter outages fail open.
func (s *Server) EvaluateRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.evalLimiter.Enabled() {
			c.Next()
			return
		}

		res, err := s.evalLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			if s.log != nil {
				s.log.Warn("evaluate rate limiter unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
