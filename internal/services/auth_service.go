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
	ErrMissingCredentials = errors.New("email and password are required")
	ErrNoSession          = errors.New("no active session")
)

const resourceCurrentUser = "current-user"

// AuthService owns the login, logout and identity flows. A successful login
// exchanges credentials for an upstream token, then wraps it in a gateway
// session cookie; the browser never sees the token itself.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *session.Session, error)
	Logout(ctx context.Context) error
	Signup(ctx context.Context, p backend.SignupParams) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	ActivateOrganization(ctx context.Context, orgID string) error
	ListUsers(ctx context.Context, p backend.ListUsersParams) (*models.UsersPage, error)
	DeleteUser(ctx context.Context, userID string) error
}

type authService struct {
	backend  *backend.Client
	cache    *cache.Coordinator
	sessions *session.Manager
}

// NewAuthService creates the auth service.
func NewAuthService(b *backend.Client, c *cache.Coordinator, m *session.Manager) AuthService {
	return &authService{backend: b, cache: c, sessions: m}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *session.Session, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}
	token, err := s.backend.Login(ctx, backend.LoginParams{Username: email, Password: password})
	if err != nil {
		return "", nil, err
	}
	cookieValue, sess, err := s.sessions.Issue(email, token.AccessToken)
	if err != nil {
		return "", nil, err
	}
	return cookieValue, sess, nil
}

func (s *authService) Logout(ctx context.Context) error {
	sc := session.FromContext(ctx)
	if sc == nil {
		return ErrNoSession
	}
	sessionID := sc.SessionID()
	sc.Clear()
	// Logged-out views must not show the previous user's identity.
	s.cache.Invalidate(cache.ResourceKey(resourceCurrentUser))
	return s.sessions.Destroy(sessionID)
}

func (s *authService) Signup(ctx context.Context, p backend.SignupParams) (*models.User, error) {
	return s.backend.Signup(ctx, p)
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, ErrNoSession
	}
	key := cache.NewKey(resourceCurrentUser, sessionScope{Session: sc.SessionID()})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.CurrentUser(fctx)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.User), nil
}

func (s *authService) ActivateOrganization(ctx context.Context, orgID string) error {
	sc := session.FromContext(ctx)
	if sc == nil {
		return ErrNoSession
	}
	if err := s.sessions.Activate(sc.SessionID(), orgID); err != nil {
		return err
	}
	sc.SetOrganization(orgID)
	return nil
}

func (s *authService) ListUsers(ctx context.Context, p backend.ListUsersParams) (*models.UsersPage, error) {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil, ErrNoSession
	}
	key := cache.NewKey("users", struct {
		sessionScope
		backend.ListUsersParams
	}{sessionScope{Session: sc.SessionID()}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListUsers(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.UsersPage), nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return nil, s.backend.DeleteUser(mctx, userID)
	}, cache.ResourceKey("users"))
	return err
}
