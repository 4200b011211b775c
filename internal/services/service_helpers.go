package services

import (
	"context"

	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/session"
)

// rebind carries the caller's session context into a coordinator fetch.
// Background fetches run on the coordinator's own context, so the auth
// state has to travel with the closure.
func rebind(sc *session.Context, fn func(ctx context.Context) (any, error)) cache.FetchFunc {
	return func(ctx context.Context) (any, error) {
		return fn(session.WithContext(ctx, sc))
	}
}

// orgScope is embedded in cache key params for organization-scoped reads so
// two organizations never share a cache entry.
type orgScope struct {
	Org string `json:"org"`
}

// sessionScope is embedded in cache key params for reads whose result depends
// on who is asking (portal views, current user).
type sessionScope struct {
	Session string `json:"session"`
}
