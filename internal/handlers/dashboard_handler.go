package handlers

import (
	"net/http"

	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the admin dashboard summary.
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns the aggregate dashboard view.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
