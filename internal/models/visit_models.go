package models

import "time"

// Visit is one check-in/check-out cycle for a client.
// Duration is derived by the backend once check_out is set.
type Visit struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	PlanInstanceID *string    `json:"plan_instance_id,omitempty"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	DurationMins   *int       `json:"duration,omitempty"`
}

// VisitsPage is the paginated shape for visit listings.
type VisitsPage struct {
	Data  []Visit `json:"data"`
	Count int     `json:"count"`
}
