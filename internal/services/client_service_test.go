package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFixture(t *testing.T, handler http.HandlerFunc) ClientService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := backend.New(backend.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return NewClientService(client, cache.New(cache.Config{TTL: time.Minute}))
}

func orgContext(sessionID, org string) context.Context {
	return session.WithContext(context.Background(), session.NewContext(sessionID, "token", org))
}

func TestCreateChildClientRequiresGuardian(t *testing.T) {
	called := false
	svc := newClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.CreateClient(orgContext("s1", "org-1"), backend.CreateClientParams{
		Identification: "12345",
		FullName:       "Niño Test",
		IsChild:        true,
	})
	assert.ErrorIs(t, err, ErrGuardianRequired)
	assert.False(t, called)

	empty := ""
	_, err = svc.CreateClient(orgContext("s1", "org-1"), backend.CreateClientParams{
		Identification: "12345",
		FullName:       "Niño Test",
		IsChild:        true,
		GuardianID:     &empty,
	})
	assert.ErrorIs(t, err, ErrGuardianRequired)
}

func TestOrganizationsDoNotShareCacheEntries(t *testing.T) {
	var hits int32
	svc := newClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"data":[],"count":0}`))
	})

	_, err := svc.ListClients(orgContext("s1", "org-a"), backend.ListClientsParams{Limit: 50})
	require.NoError(t, err)
	_, err = svc.ListClients(orgContext("s2", "org-b"), backend.ListClientsParams{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "each organization needs its own fetch")

	_, err = svc.ListClients(orgContext("s1", "org-a"), backend.ListClientsParams{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "a repeat read within one organization is a cache hit")
}

func TestDeleteClientInvalidatesGroupsToo(t *testing.T) {
	var listHits, groupHits int32
	svc := newClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"message":"deleted"}`))
		case r.URL.Path == "/api/v1/admin/clients":
			atomic.AddInt32(&listHits, 1)
			w.Write([]byte(`{"data":[],"count":0}`))
		case r.URL.Path == "/api/v1/admin/client-groups":
			atomic.AddInt32(&groupHits, 1)
			w.Write([]byte(`{"data":[],"count":0}`))
		}
	})

	ctx := orgContext("s1", "org-1")
	_, err := svc.ListClients(ctx, backend.ListClientsParams{Limit: 50})
	require.NoError(t, err)
	_, err = svc.ListGroups(ctx, backend.ListClientGroupsParams{Limit: 50})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(ctx, "c1"))

	// Groups embed client membership, so both listings revalidate.
	_, err = svc.ListClients(ctx, backend.ListClientsParams{Limit: 50})
	require.NoError(t, err)
	_, err = svc.ListGroups(ctx, backend.ListClientGroupsParams{Limit: 50})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&listHits) == 2 && atomic.LoadInt32(&groupHits) == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestListClientsWithoutSessionFailsFast(t *testing.T) {
	called := false
	svc := newClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.ListClients(context.Background(), backend.ListClientsParams{})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called)
}
