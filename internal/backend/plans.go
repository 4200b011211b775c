package backend

import (
	"context"
	"encoding/json"
	"time"

	"casa_arbol_gateway/internal/models"
)

// ListPlansParams paginates and filters the plan listing.
type ListPlansParams struct {
	Skip       int  `json:"skip"`
	Limit      int  `json:"limit"`
	ActiveOnly bool `json:"active_only"`
}

// ListPlans lists membership plans. GET /api/v1/admin/plans,
// errors: 401, 403, 422.
func (c *Client) ListPlans(ctx context.Context, p ListPlansParams) (*models.PlansPage, error) {
	op := operation{name: "list_plans", method: "GET", path: "/api/v1/admin/plans", auth: true, useOrg: true}
	q := pagination(p.Skip, p.Limit)
	if p.ActiveOnly {
		q.Set("active_only", "true")
	}
	var page models.PlansPage
	if err := c.do(ctx, op, nil, q, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlanParams carries plan fields for create/update. Addons uses json.Number
// so resubmitting an unchanged plan reproduces the addon prices exactly.
type PlanParams struct {
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
	IsActive     *bool                  `json:"is_active,omitempty"`
}

// CreatePlan creates a plan. POST /api/v1/admin/plans, errors: 401, 403, 422.
func (c *Client) CreatePlan(ctx context.Context, p PlanParams) (*models.Plan, error) {
	op := operation{name: "create_plan", method: "POST", path: "/api/v1/admin/plans", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var plan models.Plan
	if err := c.do(ctx, op, nil, nil, body, "application/json", &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetPlan fetches one plan. GET /api/v1/admin/plans/{plan_id},
// errors: 401, 403, 404.
func (c *Client) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	op := operation{name: "get_plan", method: "GET", path: "/api/v1/admin/plans/{plan_id}", auth: true, useOrg: true}
	var plan models.Plan
	if err := c.do(ctx, op, map[string]string{"plan_id": planID}, nil, nil, "", &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan updates a plan. PUT /api/v1/admin/plans/{plan_id},
// errors: 401, 403, 404, 422.
func (c *Client) UpdatePlan(ctx context.Context, planID string, p PlanParams) (*models.Plan, error) {
	op := operation{name: "update_plan", method: "PUT", path: "/api/v1/admin/plans/{plan_id}", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var plan models.Plan
	if err := c.do(ctx, op, map[string]string{"plan_id": planID}, nil, body, "application/json", &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeletePlan removes a plan. DELETE /api/v1/admin/plans/{plan_id},
// errors: 401, 403, 404.
func (c *Client) DeletePlan(ctx context.Context, planID string) error {
	op := operation{name: "delete_plan", method: "DELETE", path: "/api/v1/admin/plans/{plan_id}", auth: true, useOrg: true}
	return c.do(ctx, op, map[string]string{"plan_id": planID}, nil, nil, "", nil)
}

// ListPlanInstancesParams paginates and filters plan instance listings.
type ListPlanInstancesParams struct {
	Skip          int    `json:"skip"`
	Limit         int    `json:"limit"`
	ClientGroupID string `json:"client_group_id,omitempty"`
}

// ListPlanInstances lists purchased plan activations.
// GET /api/v1/admin/plan-instances, errors: 401, 403, 422.
func (c *Client) ListPlanInstances(ctx context.Context, p ListPlanInstancesParams) (*models.PlanInstancesPage, error) {
	op := operation{name: "list_plan_instances", method: "GET", path: "/api/v1/admin/plan-instances", auth: true, useOrg: true}
	q := pagination(p.Skip, p.Limit)
	if p.ClientGroupID != "" {
		q.Set("client_group_id", p.ClientGroupID)
	}
	var page models.PlanInstancesPage
	if err := c.do(ctx, op, nil, q, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPlanInstance fetches one instance.
// GET /api/v1/admin/plan-instances/{instance_id}, errors: 401, 403, 404.
func (c *Client) GetPlanInstance(ctx context.Context, instanceID string) (*models.PlanInstance, error) {
	op := operation{name: "get_plan_instance", method: "GET", path: "/api/v1/admin/plan-instances/{instance_id}", auth: true, useOrg: true}
	var instance models.PlanInstance
	if err := c.do(ctx, op, map[string]string{"instance_id": instanceID}, nil, nil, "", &instance); err != nil {
		return nil, err
	}
	return &instance, nil
}

// MyPlanInstances lists the caller's own plan instances (client portal).
// GET /api/v1/clients/plans, errors: 401.
func (c *Client) MyPlanInstances(ctx context.Context) (*models.PlanInstancesPage, error) {
	op := operation{name: "my_plan_instances", method: "GET", path: "/api/v1/clients/plans", auth: true}
	var page models.PlanInstancesPage
	if err := c.do(ctx, op, nil, nil, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePlanTokenParams mints a redeemable plan token.
type CreatePlanTokenParams struct {
	PlanID    string     `json:"plan_id"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreatePlanToken mints a token. POST /api/v1/admin/tokens,
// errors: 401, 403, 422.
func (c *Client) CreatePlanToken(ctx context.Context, p CreatePlanTokenParams) (*models.PlanToken, error) {
	op := operation{name: "create_plan_token", method: "POST", path: "/api/v1/admin/tokens", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var token models.PlanToken
	if err := c.do(ctx, op, nil, nil, body, "application/json", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// ListPlanTokensParams paginates the token listing.
type ListPlanTokensParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListPlanTokens lists tokens. GET /api/v1/admin/tokens, errors: 401, 403, 422.
func (c *Client) ListPlanTokens(ctx context.Context, p ListPlanTokensParams) (*models.PlanTokensPage, error) {
	op := operation{name: "list_plan_tokens", method: "GET", path: "/api/v1/admin/tokens", auth: true, useOrg: true}
	var page models.PlanTokensPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ValidatePlanTokenParams submits a token value for validation.
type ValidatePlanTokenParams struct {
	TokenValue string `json:"token_value"`
}

// ValidatePlanToken checks a token. POST /api/v1/admin/tokens/validate,
// errors: 401, 403, 422.
func (c *Client) ValidatePlanToken(ctx context.Context, p ValidatePlanTokenParams) (*models.TokenValidation, error) {
	op := operation{name: "validate_plan_token", method: "POST", path: "/api/v1/admin/tokens/validate", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var verdict models.TokenValidation
	if err := c.do(ctx, op, nil, nil, body, "application/json", &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}
