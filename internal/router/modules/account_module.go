package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/civic-reports/internal/interface/http"
)

// AccountModule serves POST /signup and POST /login.
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", limit(10, time.Minute), m.Handler.SignUp)
	rg.POST("/login", limit(20, time.Minute), m.Handler.Login)
}
