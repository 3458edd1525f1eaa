package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/civic-reports/internal/interface/http"
)

type MediaModule struct {
	Handler *handlers.MediaHandler
}

func NewMediaModule(h *handlers.MediaHandler) *MediaModule {
	return &MediaModule{Handler: h}
}

func (m *MediaModule) Register(rg *gin.RouterGroup) {
	rg.POST("/media", limit(10, time.Minute), m.Handler.Upload)
}
