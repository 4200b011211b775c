package handlers

import (
	"net/http"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes plan, plan-instance and plan-token endpoints.
type PlanHandler struct {
	service services.PlanService
}

// NewPlanHandler creates the plan handler.
func NewPlanHandler(service services.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// ListPlans lists membership plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListPlans(c.Request.Context(), backend.ListPlansParams{
		Skip:       skip,
		Limit:      limit,
		ActiveOnly: c.Query("active_only") == "true",
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreatePlan creates a plan. The payload is forwarded as-is; addon prices
// survive the round trip digit for digit.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req backend.PlanParams
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	plan, err := h.service.CreatePlan(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlan fetches one plan.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.service.GetPlan(c.Request.Context(), c.Param("plan_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan updates a plan.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req backend.PlanParams
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	plan, err := h.service.UpdatePlan(c.Request.Context(), c.Param("plan_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.service.DeletePlan(c.Request.Context(), c.Param("plan_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted."})
}

// ListInstances lists purchased plan activations.
func (h *PlanHandler) ListInstances(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListInstances(c.Request.Context(), backend.ListPlanInstancesParams{
		Skip:          skip,
		Limit:         limit,
		ClientGroupID: c.Query("client_group_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetInstance fetches one plan instance.
func (h *PlanHandler) GetInstance(c *gin.Context) {
	instance, err := h.service.GetInstance(c.Request.Context(), c.Param("instance_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

// MyPlans lists the caller's own plan instances (client portal).
func (h *PlanHandler) MyPlans(c *gin.Context) {
	page, err := h.service.MyPlans(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createTokenRequest struct {
	PlanID    string     `json:"plan_id" binding:"required"`
	MaxUses   *int       `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateToken mints a redeemable plan token.
func (h *PlanHandler) CreateToken(c *gin.Context) {
	var req createTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	token, err := h.service.CreateToken(c.Request.Context(), backend.CreatePlanTokenParams{
		PlanID:    req.PlanID,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

// ListTokens lists plan tokens.
func (h *PlanHandler) ListTokens(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListTokens(c.Request.Context(), backend.ListPlanTokensParams{Skip: skip, Limit: limit})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type validateTokenRequest struct {
	TokenValue string `json:"token_value" binding:"required"`
}

// ValidateToken checks a token's redeemability.
func (h *PlanHandler) ValidateToken(c *gin.Context) {
	var req validateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	verdict, err := h.service.ValidateToken(c.Request.Context(), req.TokenValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}
