package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/internal/container"
	"github.com/oksasatya/civic-reports/internal/interface/middleware"
)

// limit builds a per-IP, per-route limiter. It is a pass-through when rate
// limiting is off or Redis is absent.
func limit(max int, window time.Duration) gin.HandlerFunc {
	return limitBy(max, window, middleware.KeyByIPAndPath())
}

func limitBy(max int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	if cfg := container.GetConfig(); cfg != nil && !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	l := &middleware.Limiter{
		Redis:  container.GetRedis(),
		Max:    max,
		Window: window,
		Key:    key,
		Logger: container.GetLogger(),
	}
	return l.Handler()
}
