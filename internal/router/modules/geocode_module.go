package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/civic-reports/internal/interface/http"
)

type GeocodeModule struct {
	Handler *handlers.GeocodeHandler
}

func NewGeocodeModule(h *handlers.GeocodeHandler) *GeocodeModule {
	return &GeocodeModule{Handler: h}
}

// Nominatim's usage policy allows about one request per second per client.
func (m *GeocodeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/geocode/reverse", limit(60, time.Minute), m.Handler.Reverse)
}
