package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// Single-address headers set by the edge, checked in order before
// X-Forwarded-For.
var realIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP"}

// RealIP stores the originating client address under CtxRealIPKey for rate
// limit keys and logs. It falls back to the socket address.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	for _, h := range realIPHeaders {
		if ip := parseIP(c.GetHeader(h)); ip != "" {
			return ip
		}
	}
	// left-most entry is the original client
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

// parseIP accepts a bare address or host:port and returns the canonical
// address, or "" when s is not an IP.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
