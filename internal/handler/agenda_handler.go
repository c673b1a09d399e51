package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monagenda.fr/myagenda/internal/dto"
	"monagenda.fr/myagenda/internal/middleware"
	"monagenda.fr/myagenda/internal/service"
	"monagenda.fr/myagenda/pkg/response"
	"monagenda.fr/myagenda/pkg/validator"
)

type AgendaHandler struct {
	service service.AgendaService
}

func NewAgendaHandler(service service.AgendaService) *AgendaHandler {
	return &AgendaHandler{service: service}
}

// MonthView returns the month grid. Without year/month parameters it shows
// the current month.
func (h *AgendaHandler) MonthView(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var filter dto.AgendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	view, err := h.service.MonthView(c.Request.Context(), user, filter.Year, filter.Month)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}
