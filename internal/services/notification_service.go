package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
)

var (
	ErrNotificationTarget = errors.New("exactly one of broadcast, client or group must be targeted")
	ErrEmptyMessage       = errors.New("notification message is required")
)

const resourceNotifications = "notifications"

// NotificationService manages notifications sent to clients and groups.
type NotificationService interface {
	Create(ctx context.Context, p backend.CreateNotificationParams) (*models.Notification, error)
	List(ctx context.Context, p backend.ListNotificationsParams) (*models.NotificationsPage, error)
}

type notificationService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewNotificationService creates the notification service.
func NewNotificationService(b *backend.Client, c *cache.Coordinator) NotificationService {
	return &notificationService{backend: b, cache: c}
}

func (s *notificationService) Create(ctx context.Context, p backend.CreateNotificationParams) (*models.Notification, error) {
	if p.Message == "" {
		return nil, ErrEmptyMessage
	}
	targets := 0
	if p.IsBroadcast {
		targets++
	}
	if p.TargetClientID != nil && *p.TargetClientID != "" {
		targets++
	}
	if p.TargetGroupID != nil && *p.TargetGroupID != "" {
		targets++
	}
	if targets != 1 {
		return nil, ErrNotificationTarget
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateNotification(mctx, p)
	}, cache.ResourceKey(resourceNotifications))
	if err != nil {
		return nil, err
	}
	return v.(*models.Notification), nil
}

func (s *notificationService) List(ctx context.Context, p backend.ListNotificationsParams) (*models.NotificationsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceNotifications, struct {
		orgScope
		backend.ListNotificationsParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListNotifications(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.NotificationsPage), nil
}
