package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/pkg/response"
)

const multipartOverhead = 1 << 20

type MediaHandler struct {
	Svc    *application.MediaService
	Logger *logrus.Logger
}

func NewMediaHandler(svc *application.MediaService, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{Svc: svc, Logger: logger}
}

// Upload accepts a multipart form with a single "file" part.
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.Svc.Store == nil {
		writeError(c, h.Logger, application.ErrMediaUnavailable, "")
		return
	}
	limit := h.Svc.MaxVideoBytes
	if h.Svc.MaxImageBytes > limit {
		limit = h.Svc.MaxImageBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, h.Logger, &application.MediaTooLargeError{Kind: application.MediaVideo, Limit: h.Svc.MaxVideoBytes}, "")
			return
		}
		response.Error(c, http.StatusBadRequest, "Missing file", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err, "Failed to read upload")
		return
	}
	defer f.Close()

	up, err := h.Svc.Upload(c.Request.Context(), fh.Filename, fh.Size, f)
	if err != nil {
		writeError(c, h.Logger, err, "Failed to upload media")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": up.URL, "kind": up.Kind, "contentType": up.ContentType})
}
