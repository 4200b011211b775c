package models

import "time"

// User represents an account on the membership backend.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UsersPage is the paginated shape the backend returns for user listings.
type UsersPage struct {
	Data  []User `json:"data"`
	Count int    `json:"count"`
}

// Token is the backend's response to the access-token operation.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
