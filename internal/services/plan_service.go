package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
	"casa_arbol_gateway/internal/session"
)

var ErrTokenValueRequired = errors.New("token value is required")

const (
	resourcePlans         = "plans"
	resourcePlanInstances = "plan-instances"
	resourcePlanTokens    = "plan-tokens"
	resourceMyPlans       = "my-plans"
)

// PlanService manages membership plans, purchased plan instances and
// redeemable plan tokens.
type PlanService interface {
	ListPlans(ctx context.Context, p backend.ListPlansParams) (*models.PlansPage, error)
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	CreatePlan(ctx context.Context, p backend.PlanParams) (*models.Plan, error)
	UpdatePlan(ctx context.Context, planID string, p backend.PlanParams) (*models.Plan, error)
	DeletePlan(ctx context.Context, planID string) error
	ListInstances(ctx context.Context, p backend.ListPlanInstancesParams) (*models.PlanInstancesPage, error)
	GetInstance(ctx context.Context, instanceID string) (*models.PlanInstance, error)
	MyPlans(ctx context.Context) (*models.PlanInstancesPage, error)
	CreateToken(ctx context.Context, p backend.CreatePlanTokenParams) (*models.PlanToken, error)
	ListTokens(ctx context.Context, p backend.ListPlanTokensParams) (*models.PlanTokensPage, error)
	ValidateToken(ctx context.Context, tokenValue string) (*models.TokenValidation, error)
}

type planService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewPlanService creates the plan service.
func NewPlanService(b *backend.Client, c *cache.Coordinator) PlanService {
	return &planService{backend: b, cache: c}
}

func (s *planService) ListPlans(ctx context.Context, p backend.ListPlansParams) (*models.PlansPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePlans, struct {
		orgScope
		backend.ListPlansParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListPlans(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlansPage), nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePlans, struct {
		orgScope
		ID string `json:"id"`
	}{orgScope{Org: org}, planID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.GetPlan(fctx, planID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.Plan), nil
}

func (s *planService) CreatePlan(ctx context.Context, p backend.PlanParams) (*models.Plan, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreatePlan(mctx, p)
	}, cache.ResourceKey(resourcePlans))
	if err != nil {
		return nil, err
	}
	return v.(*models.Plan), nil
}

func (s *planService) UpdatePlan(ctx context.Context, planID string, p backend.PlanParams) (*models.Plan, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.UpdatePlan(mctx, planID, p)
	}, cache.ResourceKey(resourcePlans))
	if err != nil {
		return nil, err
	}
	return v.(*models.Plan), nil
}

func (s *planService) DeletePlan(ctx context.Context, planID string) error {
	_, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return nil, s.backend.DeletePlan(mctx, planID)
	}, cache.ResourceKey(resourcePlans))
	return err
}

func (s *planService) ListInstances(ctx context.Context, p backend.ListPlanInstancesParams) (*models.PlanInstancesPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePlanInstances, struct {
		orgScope
		backend.ListPlanInstancesParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListPlanInstances(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlanInstancesPage), nil
}

func (s *planService) GetInstance(ctx context.Context, instanceID string) (*models.PlanInstance, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePlanInstances, struct {
		orgScope
		ID string `json:"id"`
	}{orgScope{Org: org}, instanceID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.GetPlanInstance(fctx, instanceID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlanInstance), nil
}

func (s *planService) MyPlans(ctx context.Context) (*models.PlanInstancesPage, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, ErrNoSession
	}
	key := cache.NewKey(resourceMyPlans, sessionScope{Session: sc.SessionID()})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.MyPlanInstances(fctx)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlanInstancesPage), nil
}

func (s *planService) CreateToken(ctx context.Context, p backend.CreatePlanTokenParams) (*models.PlanToken, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreatePlanToken(mctx, p)
	}, cache.ResourceKey(resourcePlanTokens))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlanToken), nil
}

func (s *planService) ListTokens(ctx context.Context, p backend.ListPlanTokensParams) (*models.PlanTokensPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePlanTokens, struct {
		orgScope
		backend.ListPlanTokensParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListPlanTokens(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PlanTokensPage), nil
}

// ValidateToken is read-like but sent as a POST by the backend; its verdict
// can flip at any moment (uses remaining, expiry), so it is never cached.
func (s *planService) ValidateToken(ctx context.Context, tokenValue string) (*models.TokenValidation, error) {
	if tokenValue == "" {
		return nil, ErrTokenValueRequired
	}
	return s.backend.ValidatePlanToken(ctx, backend.ValidatePlanTokenParams{TokenValue: tokenValue})
}
