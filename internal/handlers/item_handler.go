package handlers

import (
	"net/http"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// ItemHandler exposes personal item endpoints.
type ItemHandler struct {
	service services.ItemService
}

// NewItemHandler creates the item handler.
func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List lists the caller's items.
func (h *ItemHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.List(c.Request.Context(), backend.ListItemsParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get fetches one item.
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type itemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// Create creates an item.
func (h *ItemHandler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), backend.ItemParams{Title: req.Title, Description: req.Description})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update updates an item.
func (h *ItemHandler) Update(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("item_id"), backend.ItemParams{Title: req.Title, Description: req.Description})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes an item.
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("item_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted."})
}
