package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/pkg/response"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

func (h *AccountHandler) SignUp(c *gin.Context) {
	var req application.SignUpInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Svc.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to sign up")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to log in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
