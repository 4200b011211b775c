package services

import (
	"context"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/models"
)

// DashboardSummary is the admin landing page's aggregate view. Every number
// comes from a cached listing, so rendering the dashboard costs at most
// four backend calls and usually zero.
type DashboardSummary struct {
	Clients         int `json:"clients"`
	ActivePlans     int `json:"active_plans"`
	VisitorsPresent int `json:"visitors_present"`
	PendingPayments int `json:"pending_payments"`
}

// DashboardService composes the admin dashboard from the other services.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardService struct {
	clients  ClientService
	plans    PlanService
	visits   VisitService
	payments PaymentService
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(clients ClientService, plans PlanService, visits VisitService, payments PaymentService) DashboardService {
	return &dashboardService{clients: clients, plans: plans, visits: visits, payments: payments}
}

func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	clients, err := s.clients.ListClients(ctx, backend.ListClientsParams{Limit: 1})
	if err != nil {
		return nil, err
	}
	summary.Clients = clients.Count

	plans, err := s.plans.ListPlans(ctx, backend.ListPlansParams{Limit: 1, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	summary.ActivePlans = plans.Count

	visits, err := s.visits.ActiveVisits(ctx)
	if err != nil {
		return nil, err
	}
	summary.VisitorsPresent = len(visits.Data)

	payments, err := s.payments.ListPayments(ctx, backend.ListPaymentsParams{Limit: 1, Status: models.PaymentStatusPending})
	if err != nil {
		return nil, err
	}
	summary.PendingPayments = payments.Count

	return summary, nil
}
