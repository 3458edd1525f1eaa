package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/pkg/response"
)

type ProblemHandler struct {
	Svc    *application.ReportService
	Logger *logrus.Logger
}

func NewProblemHandler(svc *application.ReportService, logger *logrus.Logger) *ProblemHandler {
	return &ProblemHandler{Svc: svc, Logger: logger}
}

func (h *ProblemHandler) List(c *gin.Context) {
	problems, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, "Failed to fetch problems")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"problems": problems})
}

func (h *ProblemHandler) Create(c *gin.Context) {
	var req application.CreateReportInput
	if !bindJSON(c, &req) {
		return
	}
	problem, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to create problem")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"problem": problem})
}

func (h *ProblemHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err, "Failed to delete problem")
		return
	}
	response.Success(c, http.StatusOK, nil)
}
