package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
)

var (
	ErrInvalidAmount     = errors.New("payment amount must be positive")
	ErrUnknownPayStatus  = errors.New("unknown payment status filter")
	ErrMissingPlanChoice = errors.New("plan and client group are required")
)

const resourcePayments = "payments"

// PaymentService manages reservations and payments. Payments are charges:
// they are never retried automatically and their caches are only touched
// when the backend confirmed the write.
type PaymentService interface {
	CreateReservation(ctx context.Context, p backend.CreateReservationParams) (*models.Reservation, error)
	CreatePayment(ctx context.Context, p backend.CreatePaymentParams) (*models.Payment, error)
	ListPayments(ctx context.Context, p backend.ListPaymentsParams) (*models.PaymentsPage, error)
}

type paymentService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewPaymentService creates the payment service.
func NewPaymentService(b *backend.Client, c *cache.Coordinator) PaymentService {
	return &paymentService{backend: b, cache: c}
}

func (s *paymentService) CreateReservation(ctx context.Context, p backend.CreateReservationParams) (*models.Reservation, error) {
	if p.PlanID == "" || p.ClientGroupID == "" {
		return nil, ErrMissingPlanChoice
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateReservation(mctx, p)
	}, cache.ResourceKey(resourcePlanInstances), cache.ResourceKey(resourceMyPlans))
	if err != nil {
		return nil, err
	}
	return v.(*models.Reservation), nil
}

func (s *paymentService) CreatePayment(ctx context.Context, p backend.CreatePaymentParams) (*models.Payment, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreatePayment(mctx, p)
	}, cache.ResourceKey(resourcePayments), cache.ResourceKey(resourcePlanInstances), cache.ResourceKey(resourceMyPlans))
	if err != nil {
		return nil, err
	}
	return v.(*models.Payment), nil
}

func (s *paymentService) ListPayments(ctx context.Context, p backend.ListPaymentsParams) (*models.PaymentsPage, error) {
	if p.Status != "" && !models.ValidPaymentStatus(p.Status) {
		return nil, ErrUnknownPayStatus
	}
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourcePayments, struct {
		orgScope
		backend.ListPaymentsParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListPayments(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.PaymentsPage), nil
}
