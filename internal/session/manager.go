package session

import (
	"errors"
	"strings"
	"time"

	"casa_arbol_gateway/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCookie is returned for a malformed or forged session cookie.
	ErrInvalidCookie = errors.New("invalid session cookie")
	// ErrSessionExpired is returned when the session has outlived its TTL.
	ErrSessionExpired = errors.New("session expired")
)

// CookieName is the browser cookie carrying "<session id>.<secret>".
const CookieName = "casa_session"

// Manager issues and resolves gateway sessions.
type Manager struct {
	repo Repository
	ttl  time.Duration
}

// NewManager creates a session manager with the given session lifetime.
func NewManager(repo Repository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{repo: repo, ttl: ttl}
}

// Issue creates a session bound to an upstream access token and returns the
// cookie value. The session never outlives the token: when the token carries
// an exp claim earlier than the configured TTL, the session expires with it.
func (m *Manager) Issue(userEmail, accessToken string) (string, *Session, error) {
	id := uuid.NewString()
	secret := uuid.NewString()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)
	if tokenExp, err := utils.TokenExpiry(accessToken); err == nil && tokenExp.Before(expiresAt) {
		expiresAt = tokenExp
	}

	s := &Session{
		ID:          id,
		SecretHash:  string(hash),
		UserEmail:   userEmail,
		AccessToken: accessToken,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}
	if err := m.repo.Create(s); err != nil {
		return "", nil, err
	}
	return id + "." + secret, s, nil
}

// Resolve verifies a cookie value and loads its session.
func (m *Manager) Resolve(cookieValue string) (*Session, error) {
	id, secret, ok := strings.Cut(cookieValue, ".")
	if !ok || id == "" || secret == "" {
		return nil, ErrInvalidCookie
	}

	s, err := m.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidCookie
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.SecretHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCookie
	}
	if time.Now().After(s.ExpiresAt) {
		// Best effort cleanup; the cron purge catches stragglers.
		_ = m.repo.Delete(s.ID)
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Activate sets the active organization for a session.
func (m *Manager) Activate(sessionID, orgID string) error {
	return m.repo.SetOrganization(sessionID, orgID)
}

// Destroy removes a session, e.g. on logout.
func (m *Manager) Destroy(sessionID string) error {
	err := m.repo.Delete(sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// PurgeExpired removes sessions past their expiry. Wired to cron in main.
func (m *Manager) PurgeExpired() (int64, error) {
	return m.repo.DeleteExpired(time.Now())
}
