package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
	"casa_arbol_gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVenue is a stateful in-memory membership backend covering the visit
// endpoints.
type fakeVenue struct {
	mu     sync.Mutex
	visits map[string]*models.Visit
	nextID int
	hits   map[string]int
}

func newFakeVenue() *fakeVenue {
	return &fakeVenue{visits: make(map[string]*models.Visit), hits: make(map[string]int)}
}

func (f *fakeVenue) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits[r.Method+" "+r.URL.Path]++

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/admin/visits/check-in":
			f.nextID++
			id := fmt.Sprintf("visit-%d", f.nextID)
			checkIn, _ := time.Parse(time.RFC3339, r.URL.Query().Get("check_in"))
			v := &models.Visit{ID: id, ClientID: r.URL.Query().Get("client_id"), CheckIn: checkIn}
			f.visits[id] = v
			json.NewEncoder(w).Encode(v)

		case r.Method == http.MethodPut && len(r.URL.Path) > len("/api/v1/admin/visits/") && r.URL.Path[len(r.URL.Path)-10:] == "/check-out":
			id := r.URL.Path[len("/api/v1/admin/visits/") : len(r.URL.Path)-len("/check-out")]
			v, ok := f.visits[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"detail":"Visit not found"}`))
				return
			}
			now := time.Now()
			v.CheckOut = &now
			json.NewEncoder(w).Encode(v)

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/admin/visits/active":
			page := models.VisitsPage{Data: []models.Visit{}}
			for _, v := range f.visits {
				if v.CheckOut == nil {
					page.Data = append(page.Data, *v)
				}
			}
			page.Count = len(page.Data)
			json.NewEncoder(w).Encode(page)

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/admin/visits":
			page := models.VisitsPage{Data: []models.Visit{}}
			for _, v := range f.visits {
				page.Data = append(page.Data, *v)
			}
			page.Count = len(page.Data)
			json.NewEncoder(w).Encode(page)

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))
		}
	}
}

func newVisitFixture(t *testing.T) (VisitService, *fakeVenue, context.Context) {
	t.Helper()
	venue := newFakeVenue()
	srv := httptest.NewServer(venue.handler())
	t.Cleanup(srv.Close)

	client, err := backend.New(backend.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	coordinator := cache.New(cache.Config{TTL: time.Minute})

	ctx := session.WithContext(context.Background(), session.NewContext("sess-1", "token", "org-1"))
	return NewVisitService(client, coordinator), venue, ctx
}

func TestCheckInAppearsInActiveVisits(t *testing.T) {
	svc, _, ctx := newVisitFixture(t)

	visit, err := svc.CheckIn(ctx, "client-9", time.Now())
	require.NoError(t, err)
	require.False(t, visit.CheckIn.IsZero())

	active, err := svc.ActiveVisits(ctx)
	require.NoError(t, err)
	require.Len(t, active.Data, 1)
	assert.Equal(t, "client-9", active.Data[0].ClientID)
	assert.Nil(t, active.Data[0].CheckOut)
}

func TestCheckOutDisappearsFromActiveVisits(t *testing.T) {
	svc, _, ctx := newVisitFixture(t)

	visit, err := svc.CheckIn(ctx, "client-9", time.Now())
	require.NoError(t, err)

	active, err := svc.ActiveVisits(ctx)
	require.NoError(t, err)
	require.Len(t, active.Data, 1)

	out, err := svc.CheckOut(ctx, visit.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)

	// The check-out invalidated the visits cache, so the next read refetches.
	active, err = svc.ActiveVisits(ctx)
	require.NoError(t, err)
	assert.Empty(t, active.Data)
}

func TestVisitHistoryIsCachedUntilInvalidation(t *testing.T) {
	svc, venue, ctx := newVisitFixture(t)

	_, err := svc.CheckIn(ctx, "client-1", time.Now())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.ListVisits(ctx, backend.ListVisitsParams{Limit: 100})
		require.NoError(t, err)
	}

	venue.mu.Lock()
	listHits := venue.hits["GET /api/v1/admin/visits"]
	venue.mu.Unlock()
	assert.Equal(t, 1, listHits, "repeated reads must share one backend fetch")
}

func TestCheckInRequiresClientID(t *testing.T) {
	svc, venue, ctx := newVisitFixture(t)

	_, err := svc.CheckIn(ctx, "", time.Now())
	assert.ErrorIs(t, err, ErrClientIDRequired)

	venue.mu.Lock()
	defer venue.mu.Unlock()
	assert.Empty(t, venue.hits)
}

func TestVisitsRequireOrganization(t *testing.T) {
	svc, venue, _ := newVisitFixture(t)

	noOrg := session.WithContext(context.Background(), session.NewContext("sess-1", "token", ""))
	_, err := svc.ActiveVisits(noOrg)
	assert.ErrorIs(t, err, ErrNoOrganization)

	venue.mu.Lock()
	defer venue.mu.Unlock()
	assert.Empty(t, venue.hits)
}
