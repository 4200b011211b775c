package handlers

import (
	"net/http"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"
	"casa_arbol_gateway/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes notification endpoints.
type NotificationHandler struct {
	service services.NotificationService
}

// NewNotificationHandler creates the notification handler.
func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type createNotificationRequest struct {
	Message        string `json:"message" binding:"required"`
	IsBroadcast    bool   `json:"is_broadcast"`
	TargetClientID string `json:"target_client_id"`
	TargetGroupID  string `json:"target_group_id"`
}

// Create sends a notification to a client, a group or everyone. Admin forms
// send empty strings for unselected targets; those become absent fields so
// the one-target rule sees them as unset.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	notification, err := h.service.Create(c.Request.Context(), backend.CreateNotificationParams{
		Message:        req.Message,
		IsBroadcast:    req.IsBroadcast,
		TargetClientID: utils.NewNullString(req.TargetClientID),
		TargetGroupID:  utils.NewNullString(req.TargetGroupID),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// List lists notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.List(c.Request.Context(), backend.ListNotificationsParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
