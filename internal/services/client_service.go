package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
	"casa_arbol_gateway/internal/session"
)

var (
	ErrGuardianRequired = errors.New("a child client requires a guardian")
	ErrNoOrganization   = errors.New("no active organization")
)

const (
	resourceClients      = "clients"
	resourceClientGroups = "client-groups"
)

// ClientService manages venue clients and client groups.
type ClientService interface {
	ListClients(ctx context.Context, p backend.ListClientsParams) (*models.ClientsPage, error)
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	CreateClient(ctx context.Context, p backend.CreateClientParams) (*models.Client, error)
	UpdateClient(ctx context.Context, clientID string, p backend.UpdateClientParams) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
	ListGroups(ctx context.Context, p backend.ListClientGroupsParams) (*models.ClientGroupsPage, error)
	CreateGroup(ctx context.Context, p backend.CreateClientGroupParams) (*models.ClientGroup, error)
	GetGroup(ctx context.Context, groupID string) (*models.ClientGroup, error)
}

type clientService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewClientService creates the client service.
func NewClientService(b *backend.Client, c *cache.Coordinator) ClientService {
	return &clientService{backend: b, cache: c}
}

// orgOf extracts the caller's session and organization, failing before any
// I/O when either is missing.
func orgOf(ctx context.Context) (*session.Context, string, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, "", ErrNoSession
	}
	org := sc.OrganizationID()
	if org == "" {
		return nil, "", ErrNoOrganization
	}
	return sc, org, nil
}

func (s *clientService) ListClients(ctx context.Context, p backend.ListClientsParams) (*models.ClientsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceClients, struct {
		orgScope
		backend.ListClientsParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListClients(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.ClientsPage), nil
}

func (s *clientService) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceClients, struct {
		orgScope
		ID string `json:"id"`
	}{orgScope{Org: org}, clientID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.GetClient(fctx, clientID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (s *clientService) CreateClient(ctx context.Context, p backend.CreateClientParams) (*models.Client, error) {
	if p.IsChild && (p.GuardianID == nil || *p.GuardianID == "") {
		return nil, ErrGuardianRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateClient(mctx, p)
	}, cache.ResourceKey(resourceClients))
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, p backend.UpdateClientParams) (*models.Client, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.UpdateClient(mctx, clientID, p)
	}, cache.ResourceKey(resourceClients))
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	_, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return nil, s.backend.DeleteClient(mctx, clientID)
	}, cache.ResourceKey(resourceClients), cache.ResourceKey(resourceClientGroups))
	return err
}

func (s *clientService) ListGroups(ctx context.Context, p backend.ListClientGroupsParams) (*models.ClientGroupsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceClientGroups, struct {
		orgScope
		backend.ListClientGroupsParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListClientGroups(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.ClientGroupsPage), nil
}

func (s *clientService) CreateGroup(ctx context.Context, p backend.CreateClientGroupParams) (*models.ClientGroup, error) {
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateClientGroup(mctx, p)
	}, cache.ResourceKey(resourceClientGroups))
	if err != nil {
		return nil, err
	}
	return v.(*models.ClientGroup), nil
}

func (s *clientService) GetGroup(ctx context.Context, groupID string) (*models.ClientGroup, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceClientGroups, struct {
		orgScope
		ID string `json:"id"`
	}{orgScope{Org: org}, groupID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.GetClientGroup(fctx, groupID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.ClientGroup), nil
}
