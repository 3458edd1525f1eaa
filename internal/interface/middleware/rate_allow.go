package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/pkg/response"
)

// AllowPrivateIP reports whether the client IP is loopback or in a private
// range. Used as a rate limit bypass.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivate(ipFromCtx(c))
	}
}

// PrivateOnly rejects requests from public addresses with 403. It uses Gin's
// ClientIP, which only honours forwarding headers from trusted proxies.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivate(c.ClientIP()) {
			response.Abort(c, http.StatusForbidden, "Forbidden", nil)
			return
		}
		c.Next()
	}
}

func isPrivate(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	// 10.0.0.0/8, 172.16/12, 192.168/16, loopback
	return parsed.IsLoopback() || parsed.IsPrivate()
}
