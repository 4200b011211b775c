package services

import (
	"context"
	"errors"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
)

var ErrClientIDRequired = errors.New("client id is required")

const resourceVisits = "visits"

// VisitService manages front-desk check-ins and check-outs.
type VisitService interface {
	CheckIn(ctx context.Context, clientID string, at time.Time) (*models.Visit, error)
	CheckOut(ctx context.Context, visitID string) (*models.Visit, error)
	ActiveVisits(ctx context.Context) (*models.VisitsPage, error)
	ListVisits(ctx context.Context, p backend.ListVisitsParams) (*models.VisitsPage, error)
}

type visitService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewVisitService creates the visit service.
func NewVisitService(b *backend.Client, c *cache.Coordinator) VisitService {
	return &visitService{backend: b, cache: c}
}

func (s *visitService) CheckIn(ctx context.Context, clientID string, at time.Time) (*models.Visit, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}
	if at.IsZero() {
		at = time.Now()
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CheckIn(mctx, backend.CheckInParams{ClientID: clientID, CheckIn: at})
	}, cache.ResourceKey(resourceVisits))
	if err != nil {
		return nil, err
	}
	return v.(*models.Visit), nil
}

func (s *visitService) CheckOut(ctx context.Context, visitID string) (*models.Visit, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CheckOut(mctx, visitID)
	}, cache.ResourceKey(resourceVisits))
	if err != nil {
		return nil, err
	}
	return v.(*models.Visit), nil
}

// ActiveVisits is a blocking fresh read. The front desk decides who may
// leave the building from this list, so a stale answer is worse than a
// slower one.
func (s *visitService) ActiveVisits(ctx context.Context) (*models.VisitsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceVisits, struct {
		orgScope
		Active bool `json:"active"`
	}{orgScope{Org: org}, true})
	v, err := s.cache.GetFresh(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ActiveVisits(fctx)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.VisitsPage), nil
}

func (s *visitService) ListVisits(ctx context.Context, p backend.ListVisitsParams) (*models.VisitsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceVisits, struct {
		orgScope
		backend.ListVisitsParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListVisits(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.VisitsPage), nil
}
