package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Process-wide counters served on /debug/vars.
var (
	httpRequests = expvar.NewMap("http_requests_by_status")
	httpRoutes   = expvar.NewMap("http_requests_by_route")
)

// Metrics counts finished requests by status class and by route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		httpRequests.Add(strconv.Itoa(c.Writer.Status()/100)+"xx", 1)
		httpRoutes.Add(c.Request.Method+" "+routeOf(c), 1)
	}
}
