package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/pkg/response"
	"github.com/oksasatya/civic-reports/pkg/validation"
)

type GeocodeHandler struct {
	Svc *application.GeocodeService
}

func NewGeocodeHandler(svc *application.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{Svc: svc}
}

type reverseQuery struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lng *float64 `form:"lng" binding:"required,longitude"`
}

func (h *GeocodeHandler) Reverse(c *gin.Context) {
	var q reverseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid coordinates", validation.ToDetails(err))
		return
	}
	res := h.Svc.Reverse(c.Request.Context(), *q.Lat, *q.Lng)
	response.Success(c, http.StatusOK, gin.H{"location": res.Location, "resolved": res.Resolved})
}
