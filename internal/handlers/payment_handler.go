package handlers

import (
	"net/http"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes reservation and payment endpoints.
type PaymentHandler struct {
	service services.PaymentService
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createReservationRequest struct {
	PlanID        string                 `json:"plan_id" binding:"required"`
	ClientGroupID string                 `json:"client_group_id" binding:"required"`
	StartDate     time.Time              `json:"start_date" binding:"required"`
	Addons        map[string]interface{} `json:"addons"`
	TokenValue    *string                `json:"token_value"`
}

// CreateReservation reserves a plan for a client group.
func (h *PaymentHandler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	reservation, err := h.service.CreateReservation(c.Request.Context(), backend.CreateReservationParams{
		PlanID:        req.PlanID,
		ClientGroupID: req.ClientGroupID,
		StartDate:     req.StartDate,
		Addons:        req.Addons,
		TokenValue:    req.TokenValue,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

type createPaymentRequest struct {
	PlanInstanceID string  `json:"plan_instance_id" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	TransactionID  *string `json:"transaction_id"`
}

// CreatePayment records a payment. A failed payment returns the backend's
// message verbatim and the user decides whether to try again; nothing here
// resubmits the charge.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	payment, err := h.service.CreatePayment(c.Request.Context(), backend.CreatePaymentParams{
		PlanInstanceID: req.PlanInstanceID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ListPayments lists payments, optionally filtered by status.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListPayments(c.Request.Context(), backend.ListPaymentsParams{
		Skip:   skip,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
