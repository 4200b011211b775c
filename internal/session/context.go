package session

import (
	"context"
	"sync"
)

// Context carries the auth state every backend call reads: the upstream
// access token and the active organization id. It is explicitly injected
// (via request context) instead of read from ambient globals, and it is
// safe for concurrent use; SetToken/Clear affect all subsequent calls but
// never calls already in flight.
type Context struct {
	mu             sync.RWMutex
	sessionID      string
	accessToken    string
	organizationID string
}

// NewContext builds a session context for one resolved gateway session.
func NewContext(sessionID, accessToken, organizationID string) *Context {
	return &Context{
		sessionID:      sessionID,
		accessToken:    accessToken,
		organizationID: organizationID,
	}
}

// SessionID returns the gateway session id this context was resolved from.
func (c *Context) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Token returns the upstream access token, or "" when logged out.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetToken replaces the upstream access token after a refresh.
func (c *Context) SetToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// OrganizationID returns the active organization id, or "" when none is set.
func (c *Context) OrganizationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.organizationID
}

// SetOrganization activates an organization for this session.
func (c *Context) SetOrganization(orgID string) {
	c.mu.Lock()
	c.organizationID = orgID
	c.mu.Unlock()
}

// Clear drops the token and organization, e.g. on logout.
func (c *Context) Clear() {
	c.mu.Lock()
	c.accessToken = ""
	c.organizationID = ""
	c.mu.Unlock()
}

type ctxKey struct{}

// WithContext attaches a session context to a request context.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the attached session context, or nil.
func FromContext(ctx context.Context) *Context {
	sc, _ := ctx.Value(ctxKey{}).(*Context)
	return sc
}
