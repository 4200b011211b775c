package backend

import (
	"context"
	"net/url"
	"time"

	"casa_arbol_gateway/internal/models"
)

// CheckInParams opens a visit for a client. CheckIn is sent as an RFC 3339
// query parameter, matching the backend's wire format exactly.
type CheckInParams struct {
	ClientID string
	CheckIn  time.Time
}

// CheckIn opens a visit. POST /api/v1/admin/visits/check-in,
// errors: 400, 401, 403, 404, 422.
func (c *Client) CheckIn(ctx context.Context, p CheckInParams) (*models.Visit, error) {
	op := operation{name: "check_in", method: "POST", path: "/api/v1/admin/visits/check-in", auth: true, useOrg: true}
	q := url.Values{}
	q.Set("client_id", p.ClientID)
	q.Set("check_in", p.CheckIn.UTC().Format(time.RFC3339))
	var visit models.Visit
	if err := c.do(ctx, op, nil, q, nil, "", &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// CheckOut closes a visit. PUT /api/v1/admin/visits/{visit_id}/check-out,
// errors: 400, 401, 403, 404, 422.
func (c *Client) CheckOut(ctx context.Context, visitID string) (*models.Visit, error) {
	op := operation{name: "check_out", method: "PUT", path: "/api/v1/admin/visits/{visit_id}/check-out", auth: true, useOrg: true}
	var visit models.Visit
	if err := c.do(ctx, op, map[string]string{"visit_id": visitID}, nil, nil, "", &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// ActiveVisits lists visits without a check-out.
// GET /api/v1/admin/visits/active, errors: 401, 403.
func (c *Client) ActiveVisits(ctx context.Context) (*models.VisitsPage, error) {
	op := operation{name: "active_visits", method: "GET", path: "/api/v1/admin/visits/active", auth: true, useOrg: true}
	var page models.VisitsPage
	if err := c.do(ctx, op, nil, nil, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListVisitsParams paginates and filters the visit history.
type ListVisitsParams struct {
	Skip     int    `json:"skip"`
	Limit    int    `json:"limit"`
	ClientID string `json:"client_id,omitempty"`
}

// ListVisits lists visit history. GET /api/v1/admin/visits,
// errors: 401, 403, 422.
func (c *Client) ListVisits(ctx context.Context, p ListVisitsParams) (*models.VisitsPage, error) {
	op := operation{name: "list_visits", method: "GET", path: "/api/v1/admin/visits", auth: true, useOrg: true}
	q := pagination(p.Skip, p.Limit)
	if p.ClientID != "" {
		q.Set("client_id", p.ClientID)
	}
	var page models.VisitsPage
	if err := c.do(ctx, op, nil, q, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}
