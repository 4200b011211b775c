package models

import "time"

// Notification targets exactly one of: all clients (broadcast), a single
// client, or a single client group.
type Notification struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	IsBroadcast    bool      `json:"is_broadcast"`
	TargetClientID *string   `json:"target_client_id,omitempty"`
	TargetGroupID  *string   `json:"target_group_id,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationsPage is the paginated shape for notification listings.
type NotificationsPage struct {
	Data  []Notification `json:"data"`
	Count int            `json:"count"`
}
