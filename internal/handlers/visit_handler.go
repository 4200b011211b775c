package handlers

import (
	"net/http"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// VisitHandler exposes check-in, check-out and visit listing endpoints.
type VisitHandler struct {
	service services.VisitService
}

// NewVisitHandler creates the visit handler.
func NewVisitHandler(service services.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

type checkInRequest struct {
	ClientID string     `json:"client_id" binding:"required"`
	CheckIn  *time.Time `json:"check_in"`
}

// CheckIn opens a visit for a client.
func (h *VisitHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	at := time.Time{}
	if req.CheckIn != nil {
		at = *req.CheckIn
	}
	visit, err := h.service.CheckIn(c.Request.Context(), req.ClientID, at)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// CheckOut closes a visit.
func (h *VisitHandler) CheckOut(c *gin.Context) {
	visit, err := h.service.CheckOut(c.Request.Context(), c.Param("visit_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// ActiveVisits lists visits without a check-out.
func (h *VisitHandler) ActiveVisits(c *gin.Context) {
	page, err := h.service.ActiveVisits(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListVisits lists visit history.
func (h *VisitHandler) ListVisits(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListVisits(c.Request.Context(), backend.ListVisitsParams{
		Skip:     skip,
		Limit:    limit,
		ClientID: c.Query("client_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
