package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/internal/interface/middleware"
	"github.com/oksasatya/civic-reports/pkg/response"
	"github.com/oksasatya/civic-reports/pkg/validation"
)

const MsgInvalidBody = "Invalid request body"

// writeError maps application errors onto status codes and the failure
// envelope. fallback is the message used for unexpected failures.
func writeError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var (
		verr     *application.ValidationError
		tooLarge *application.MediaTooLargeError
	)
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, verr.Fields)
	case errors.Is(err, application.ErrAccountExists):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.As(err, &tooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, tooLarge.Error(), nil)
	case errors.Is(err, application.ErrUnsupportedMedia):
		response.Error(c, http.StatusBadRequest, "Only image and video files are supported", nil)
	case errors.Is(err, application.ErrMediaUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "Media uploads are not configured", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.CtxRequestIDKey),
				"path":       c.FullPath(),
			}).Error(fallback)
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}

// bindJSON decodes the request body into dst and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, MsgInvalidBody, validation.ToDetails(err))
		return false
	}
	return true
}
