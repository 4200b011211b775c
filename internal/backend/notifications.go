package backend

import (
	"context"

	"casa_arbol_gateway/internal/models"
)

// CreateNotificationParams creates a notification. Exactly one target must
// be set: broadcast, a client, or a group. The service layer enforces this
// before the call; the backend 422s otherwise.
type CreateNotificationParams struct {
	Message        string  `json:"message"`
	IsBroadcast    bool    `json:"is_broadcast"`
	TargetClientID *string `json:"target_client_id,omitempty"`
	TargetGroupID  *string `json:"target_group_id,omitempty"`
}

// CreateNotification creates a notification. POST /api/v1/admin/notifications,
// errors: 400, 401, 403, 422.
func (c *Client) CreateNotification(ctx context.Context, p CreateNotificationParams) (*models.Notification, error) {
	op := operation{name: "create_notification", method: "POST", path: "/api/v1/admin/notifications", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var notification models.Notification
	if err := c.do(ctx, op, nil, nil, body, "application/json", &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotificationsParams paginates the notification listing.
type ListNotificationsParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListNotifications lists notifications. GET /api/v1/admin/notifications,
// errors: 401, 403, 422.
func (c *Client) ListNotifications(ctx context.Context, p ListNotificationsParams) (*models.NotificationsPage, error) {
	op := operation{name: "list_notifications", method: "GET", path: "/api/v1/admin/notifications", auth: true, useOrg: true}
	var page models.NotificationsPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}
