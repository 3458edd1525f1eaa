package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/internal/interface/middleware"
)

// DebugModule exposes expvar counters, including the per-status and
// per-route request counts kept by middleware.Metrics.
type DebugModule struct {
	Window time.Duration
	Max    int
}

func NewDebugModule() *DebugModule { return &DebugModule{Window: time.Minute, Max: 120} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars",
		middleware.PrivateOnly(),
		limitBy(m.Max, m.Window, middleware.KeyByIP()),
		gin.WrapH(expvar.Handler()),
	)
}
