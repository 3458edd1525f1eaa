package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/civic-reports/internal/interface/http"
)

// ProblemModule serves the shared report feed.
type ProblemModule struct {
	Handler *handlers.ProblemHandler
}

func NewProblemModule(h *handlers.ProblemHandler) *ProblemModule {
	return &ProblemModule{Handler: h}
}

func (m *ProblemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/problems", m.Handler.List)
	rg.POST("/problems", limit(30, time.Minute), m.Handler.Create)
	rg.DELETE("/problems/:id", m.Handler.Delete)
}
