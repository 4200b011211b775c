package backend

import (
	"context"
	"time"

	"casa_arbol_gateway/internal/models"
)

// CreateReservationParams reserves a plan for a client group.
type CreateReservationParams struct {
	PlanID        string                 `json:"plan_id"`
	ClientGroupID string                 `json:"client_group_id"`
	StartDate     time.Time              `json:"start_date"`
	Addons        map[string]interface{} `json:"addons,omitempty"`
	TokenValue    *string                `json:"token_value,omitempty"`
}

// CreateReservation creates a reservation.
// POST /api/v1/clients/plans/reservations, errors: 400, 422.
func (c *Client) CreateReservation(ctx context.Context, p CreateReservationParams) (*models.Reservation, error) {
	op := operation{name: "create_reservation", method: "POST", path: "/api/v1/clients/plans/reservations", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var reservation models.Reservation
	if err := c.do(ctx, op, nil, nil, body, "application/json", &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CreatePaymentParams records a payment against a plan instance.
type CreatePaymentParams struct {
	PlanInstanceID string  `json:"plan_instance_id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionID  *string `json:"transaction_id,omitempty"`
}

// CreatePayment records a payment. POST /api/v1/clients/plans/payments,
// errors: 422. Payments are not idempotent; callers must never auto-retry.
func (c *Client) CreatePayment(ctx context.Context, p CreatePaymentParams) (*models.Payment, error) {
	op := operation{name: "create_payment", method: "POST", path: "/api/v1/clients/plans/payments", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var payment models.Payment
	if err := c.do(ctx, op, nil, nil, body, "application/json", &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPaymentsParams paginates and filters the payment listing.
type ListPaymentsParams struct {
	Skip   int    `json:"skip"`
	Limit  int    `json:"limit"`
	Status string `json:"status,omitempty"`
}

// ListPayments lists payments. GET /api/v1/admin/payments,
// errors: 401, 403, 422.
func (c *Client) ListPayments(ctx context.Context, p ListPaymentsParams) (*models.PaymentsPage, error) {
	op := operation{name: "list_payments", method: "GET", path: "/api/v1/admin/payments", auth: true, useOrg: true}
	q := pagination(p.Skip, p.Limit)
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	var page models.PaymentsPage
	if err := c.do(ctx, op, nil, q, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}
