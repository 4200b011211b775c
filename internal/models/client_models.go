package models

import "time"

// Client represents a venue client (adult or child).
type Client struct {
	ID             string    `json:"id"`
	Identification string    `json:"identification"`
	FullName       string    `json:"full_name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsChild        bool      `json:"is_child"`
	GuardianID     *string   `json:"guardian_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientGroup is a family or organization of clients sharing plan instances.
type ClientGroup struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Clients []Client `json:"clients,omitempty"`
	Admins  []string `json:"admins,omitempty"`
}

// ClientsPage is the paginated shape for client listings.
type ClientsPage struct {
	Data  []Client `json:"data"`
	Count int      `json:"count"`
}

// ClientGroupsPage is the paginated shape for client group listings.
type ClientGroupsPage struct {
	Data  []ClientGroup `json:"data"`
	Count int           `json:"count"`
}
