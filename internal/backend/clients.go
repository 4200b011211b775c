package backend

import (
	"context"

	"casa_arbol_gateway/internal/models"
)

// ListClientsParams paginates the client listing.
type ListClientsParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListClients lists venue clients. GET /api/v1/admin/clients,
// errors: 401, 403, 422.
func (c *Client) ListClients(ctx context.Context, p ListClientsParams) (*models.ClientsPage, error) {
	op := operation{name: "list_clients", method: "GET", path: "/api/v1/admin/clients", auth: true, useOrg: true}
	var page models.ClientsPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateClientParams creates a client record.
type CreateClientParams struct {
	Identification string  `json:"identification"`
	FullName       string  `json:"full_name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	IsChild        bool    `json:"is_child"`
	GuardianID     *string `json:"guardian_id,omitempty"`
}

// CreateClient creates a client. POST /api/v1/admin/clients,
// errors: 400, 401, 403, 422.
func (c *Client) CreateClient(ctx context.Context, p CreateClientParams) (*models.Client, error) {
	op := operation{name: "create_client", method: "POST", path: "/api/v1/admin/clients", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var client models.Client
	if err := c.do(ctx, op, nil, nil, body, "application/json", &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClient fetches one client. GET /api/v1/admin/clients/{client_id},
// errors: 401, 403, 404.
func (c *Client) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	op := operation{name: "get_client", method: "GET", path: "/api/v1/admin/clients/{client_id}", auth: true, useOrg: true}
	var client models.Client
	if err := c.do(ctx, op, map[string]string{"client_id": clientID}, nil, nil, "", &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClientParams carries the mutable client fields; nil means unchanged.
type UpdateClientParams struct {
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	GuardianID *string `json:"guardian_id,omitempty"`
}

// UpdateClient updates a client. PUT /api/v1/admin/clients/{client_id},
// errors: 401, 403, 404, 422.
func (c *Client) UpdateClient(ctx context.Context, clientID string, p UpdateClientParams) (*models.Client, error) {
	op := operation{name: "update_client", method: "PUT", path: "/api/v1/admin/clients/{client_id}", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var client models.Client
	if err := c.do(ctx, op, map[string]string{"client_id": clientID}, nil, body, "application/json", &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a client. DELETE /api/v1/admin/clients/{client_id},
// errors: 401, 403, 404.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	op := operation{name: "delete_client", method: "DELETE", path: "/api/v1/admin/clients/{client_id}", auth: true, useOrg: true}
	return c.do(ctx, op, map[string]string{"client_id": clientID}, nil, nil, "", nil)
}

// ListClientGroupsParams paginates the group listing.
type ListClientGroupsParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListClientGroups lists client groups. GET /api/v1/admin/client-groups,
// errors: 401, 403, 422.
func (c *Client) ListClientGroups(ctx context.Context, p ListClientGroupsParams) (*models.ClientGroupsPage, error) {
	op := operation{name: "list_client_groups", method: "GET", path: "/api/v1/admin/client-groups", auth: true, useOrg: true}
	var page models.ClientGroupsPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateClientGroupParams creates a client group.
type CreateClientGroupParams struct {
	Name      string   `json:"name"`
	ClientIDs []string `json:"client_ids,omitempty"`
	Admins    []string `json:"admins,omitempty"`
}

// CreateClientGroup creates a group. POST /api/v1/admin/client-groups,
// errors: 401, 403, 422.
func (c *Client) CreateClientGroup(ctx context.Context, p CreateClientGroupParams) (*models.ClientGroup, error) {
	op := operation{name: "create_client_group", method: "POST", path: "/api/v1/admin/client-groups", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var group models.ClientGroup
	if err := c.do(ctx, op, nil, nil, body, "application/json", &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetClientGroup fetches one group. GET /api/v1/admin/client-groups/{group_id},
// errors: 401, 403, 404.
func (c *Client) GetClientGroup(ctx context.Context, groupID string) (*models.ClientGroup, error) {
	op := operation{name: "get_client_group", method: "GET", path: "/api/v1/admin/client-groups/{group_id}", auth: true, useOrg: true}
	var group models.ClientGroup
	if err := c.do(ctx, op, map[string]string{"group_id": groupID}, nil, nil, "", &group); err != nil {
		return nil, err
	}
	return &group, nil
}
