package models

// Item is a user-owned record (the backend's generic inventory resource).
type Item struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	OwnerID     string  `json:"owner_id"`
}

// ItemsPage is the paginated shape for item listings.
type ItemsPage struct {
	Data  []Item `json:"data"`
	Count int    `json:"count"`
}
