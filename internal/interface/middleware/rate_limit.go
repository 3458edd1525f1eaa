package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit bucket name from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP gives each client one bucket across routes.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives each client one bucket per method and route, so
// signup and report submission are limited separately.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + c.Request.Method + ":" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// Fixed window counter: INCR, arm the expiry on the first hit, and return
// the count together with the remaining window in ms.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// AllowFunc returns true to bypass the limit for a request.
type AllowFunc func(*gin.Context) bool

// Limiter is a fixed-window, Redis-backed request limiter.
type Limiter struct {
	Redis  *redis.Client
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc      // optional
	Logger *logrus.Logger // optional; Redis failures are logged here
}

// Handler fails open when Redis is unreachable. OPTIONS requests are never
// counted.
func (l *Limiter) Handler() gin.HandlerFunc {
	if l.Redis == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}

		key := l.Key(c)
		count, left, err := l.hit(c, key)
		if err != nil {
			if l.Logger != nil {
				l.Logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			}
			c.Next()
			return
		}

		resetSec := int((left + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > l.Max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}
		c.Next()
	}
}

func (l *Limiter) hit(c *gin.Context, key string) (int, time.Duration, error) {
	vals, err := fixedWindowScript.Run(c.Request.Context(), l.Redis, []string{key}, l.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, redis.Nil
	}
	left := time.Duration(max(vals[1], 0)) * time.Millisecond
	return int(vals[0]), left, nil
}

// RateLimit is shorthand for a Limiter without a logger.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	l := &Limiter{Redis: rdb, Max: max, Window: window, Key: keyFn, Allow: allow}
	return l.Handler()
}
