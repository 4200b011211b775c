package models

import (
	"encoding/json"
	"time"
)

// Plan is a sellable membership plan.
//
// Addons maps addon name to price. json.Number keeps the backend's decimal
// formatting intact across edit round trips (5.00 stays 5.00, not 5).
type Plan struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Price        float64                `json:"price"`
	DurationDays *int                   `json:"duration_days,omitempty"`
	DurationHrs  *int                   `json:"duration_hours,omitempty"`
	Entries      *int                   `json:"entries,omitempty"`
	IsClassPlan  bool                   `json:"is_class_plan"`
	MaxClasses   *int                   `json:"max_classes,omitempty"`
	Addons       map[string]json.Number `json:"addons,omitempty"`
	Limits       map[string]json.Number `json:"limits,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	IsActive     bool                   `json:"is_active"`
}

// PlanInstance is a client group's purchased, time-bounded activation of a Plan.
type PlanInstance struct {
	ID               string                 `json:"id"`
	PlanID           string                 `json:"plan_id"`
	ClientGroupID    string                 `json:"client_group_id"`
	StartDate        time.Time              `json:"start_date"`
	EndDate          *time.Time             `json:"end_date,omitempty"`
	TotalCost        float64                `json:"total_cost"`
	PaidAmount       float64                `json:"paid_amount"`
	RemainingEntries *int                   `json:"remaining_entries,omitempty"`
	PurchasedAddons  map[string]json.Number `json:"purchased_addons,omitempty"`
	IsActive         bool                   `json:"is_active"`
	IsFullyPaid      bool                   `json:"is_fully_paid"`
}

// PlanToken is a redeemable code bound to a Plan.
type PlanToken struct {
	ID         string     `json:"id"`
	PlanID     string     `json:"plan_id"`
	TokenValue string     `json:"token_value"`
	MaxUses    *int       `json:"max_uses,omitempty"`
	UsesCount  int        `json:"uses_count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// TokenValidation is the backend's verdict on a submitted plan token.
type TokenValidation struct {
	Valid  bool       `json:"valid"`
	Reason *string    `json:"reason,omitempty"`
	Token  *PlanToken `json:"token,omitempty"`
}

// PlansPage is the paginated shape for plan listings.
type PlansPage struct {
	Data  []Plan `json:"data"`
	Count int    `json:"count"`
}

// PlanInstancesPage is the paginated shape for plan instance listings.
type PlanInstancesPage struct {
	Data  []PlanInstance `json:"data"`
	Count int            `json:"count"`
}

// PlanTokensPage is the paginated shape for plan token listings.
type PlanTokensPage struct {
	Data  []PlanToken `json:"data"`
	Count int         `json:"count"`
}
