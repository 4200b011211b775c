package handlers

import (
	"net/http"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// ClientHandler exposes client and client-group endpoints.
type ClientHandler struct {
	service services.ClientService
}

// NewClientHandler creates the client handler.
func NewClientHandler(service services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// ListClients lists venue clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListClients(c.Request.Context(), backend.ListClientsParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createClientRequest struct {
	Identification string  `json:"identification" binding:"required"`
	FullName       string  `json:"full_name" binding:"required"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	IsChild        bool    `json:"is_child"`
	GuardianID     *string `json:"guardian_id"`
}

// CreateClient creates a client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	client, err := h.service.CreateClient(c.Request.Context(), backend.CreateClientParams{
		Identification: req.Identification,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		IsChild:        req.IsChild,
		GuardianID:     req.GuardianID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClient fetches one client.
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.service.GetClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient updates a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req backend.UpdateClientParams
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	client, err := h.service.UpdateClient(c.Request.Context(), c.Param("client_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.service.DeleteClient(c.Request.Context(), c.Param("client_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted."})
}

// ListGroups lists client groups.
func (h *ClientHandler) ListGroups(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListGroups(c.Request.Context(), backend.ListClientGroupsParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createGroupRequest struct {
	Name      string   `json:"name" binding:"required"`
	ClientIDs []string `json:"client_ids"`
	Admins    []string `json:"admins"`
}

// CreateGroup creates a client group.
func (h *ClientHandler) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	group, err := h.service.CreateGroup(c.Request.Context(), backend.CreateClientGroupParams{
		Name:      req.Name,
		ClientIDs: req.ClientIDs,
		Admins:    req.Admins,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// GetGroup fetches one client group.
func (h *ClientHandler) GetGroup(c *gin.Context) {
	group, err := h.service.GetGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}
