package models

import "time"

// Payment statuses as the backend reports them.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment is a payment against a plan instance.
type Payment struct {
	ID             string    `json:"id"`
	ClientID       *string   `json:"client_id,omitempty"`
	PlanInstanceID string    `json:"plan_instance_id"`
	Amount         float64   `json:"amount"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"payment_method"`
	TransactionID  *string   `json:"transaction_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Reservation is a pending plan purchase created from the client portal.
type Reservation struct {
	ID            string    `json:"id"`
	PlanID        string    `json:"plan_id"`
	ClientGroupID string    `json:"client_group_id"`
	StartDate     time.Time `json:"start_date"`
	Status        string    `json:"status"`
}

// PaymentsPage is the paginated shape for payment listings.
type PaymentsPage struct {
	Data  []Payment `json:"data"`
	Count int       `json:"count"`
}
