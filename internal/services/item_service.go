package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
	"casa_arbol_gateway/internal/session"
)

var ErrTitleRequired = errors.New("item title is required")

const resourceItems = "items"

// ItemService manages the caller's personal items. Items are user-scoped,
// not organization-scoped, so cache keys carry the session instead.
type ItemService interface {
	List(ctx context.Context, p backend.ListItemsParams) (*models.ItemsPage, error)
	Get(ctx context.Context, itemID string) (*models.Item, error)
	Create(ctx context.Context, p backend.ItemParams) (*models.Item, error)
	Update(ctx context.Context, itemID string, p backend.ItemParams) (*models.Item, error)
	Delete(ctx context.Context, itemID string) error
}

type itemService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewItemService creates the item service.
func NewItemService(b *backend.Client, c *cache.Coordinator) ItemService {
	return &itemService{backend: b, cache: c}
}

func (s *itemService) List(ctx context.Context, p backend.ListItemsParams) (*models.ItemsPage, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, ErrNoSession
	}
	key := cache.NewKey(resourceItems, struct {
		sessionScope
		backend.ListItemsParams
	}{sessionScope{Session: sc.SessionID()}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListItems(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.ItemsPage), nil
}

func (s *itemService) Get(ctx context.Context, itemID string) (*models.Item, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, ErrNoSession
	}
	key := cache.NewKey(resourceItems, struct {
		sessionScope
		ID string `json:"id"`
	}{sessionScope{Session: sc.SessionID()}, itemID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.GetItem(fctx, itemID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.Item), nil
}

func (s *itemService) Create(ctx context.Context, p backend.ItemParams) (*models.Item, error) {
	if p.Title == "" {
		return nil, ErrTitleRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateItem(mctx, p)
	}, cache.ResourceKey(resourceItems))
	if err != nil {
		return nil, err
	}
	return v.(*models.Item), nil
}

func (s *itemService) Update(ctx context.Context, itemID string, p backend.ItemParams) (*models.Item, error) {
	if p.Title == "" {
		return nil, ErrTitleRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.UpdateItem(mctx, itemID, p)
	}, cache.ResourceKey(resourceItems))
	if err != nil {
		return nil, err
	}
	return v.(*models.Item), nil
}

func (s *itemService) Delete(ctx context.Context, itemID string) error {
	_, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return nil, s.backend.DeleteItem(mctx, itemID)
	}, cache.ResourceKey(resourceItems))
	return err
}
