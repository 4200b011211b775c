package backend

import (
	"context"

	"casa_arbol_gateway/internal/models"
)

// ListItemsParams paginates the item listing.
type ListItemsParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListItems lists the caller's items. GET /api/v1/items, errors: 401, 422.
func (c *Client) ListItems(ctx context.Context, p ListItemsParams) (*models.ItemsPage, error) {
	op := operation{name: "list_items", method: "GET", path: "/api/v1/items", auth: true}
	var page models.ItemsPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ItemParams carries item fields for create/update.
type ItemParams struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// CreateItem creates an item. POST /api/v1/items, errors: 401, 422.
func (c *Client) CreateItem(ctx context.Context, p ItemParams) (*models.Item, error) {
	op := operation{name: "create_item", method: "POST", path: "/api/v1/items", auth: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var item models.Item
	if err := c.do(ctx, op, nil, nil, body, "application/json", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem fetches one item. GET /api/v1/items/{item_id}, errors: 401, 404.
func (c *Client) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	op := operation{name: "get_item", method: "GET", path: "/api/v1/items/{item_id}", auth: true}
	var item models.Item
	if err := c.do(ctx, op, map[string]string{"item_id": itemID}, nil, nil, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem updates an item. PUT /api/v1/items/{item_id},
// errors: 401, 404, 422.
func (c *Client) UpdateItem(ctx context.Context, itemID string, p ItemParams) (*models.Item, error) {
	op := operation{name: "update_item", method: "PUT", path: "/api/v1/items/{item_id}", auth: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var item models.Item
	if err := c.do(ctx, op, map[string]string{"item_id": itemID}, nil, body, "application/json", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item. DELETE /api/v1/items/{item_id},
// errors: 401, 404.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	op := operation{name: "delete_item", method: "DELETE", path: "/api/v1/items/{item_id}", auth: true}
	return c.do(ctx, op, map[string]string{"item_id": itemID}, nil, nil, "", nil)
}
