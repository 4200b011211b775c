package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casa_arbol_gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(org string) context.Context {
	sc := session.NewContext("sess-1", "test-token", org)
	return session.WithContext(context.Background(), sc)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestRequestCarriesAuthAndOrgHeaders(t *testing.T) {
	var gotAuth, gotOrg, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("X-Organization-Id")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"data":[],"count":0}`))
	})

	_, err := c.ListClients(authedContext("org-7"), ListClientsParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "org-7", gotOrg)
	assert.NotEmpty(t, gotRequestID)
}

func TestNonOrgOperationOmitsOrgHeader(t *testing.T) {
	var gotOrg string
	orgHeaderSet := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotOrg = r.Header.Get("X-Organization-Id")
		_, orgHeaderSet = r.Header["X-Organization-Id"]
		w.Write([]byte(`{"id":"u1","email":"a@b.c"}`))
	})

	// The session has an organization, but users/me is not org-scoped.
	_, err := c.CurrentUser(authedContext("org-7"))
	require.NoError(t, err)
	assert.Empty(t, gotOrg)
	assert.False(t, orgHeaderSet)
}

func TestMissingTokenFailsBeforeIO(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuth, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.False(t, called, "no request may leave the process without a token")
}

func TestMissingOrganizationFailsBeforeIO(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.ListClients(authedContext(""), ListClientsParams{})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuth, apiErr.Kind)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.False(t, called)
}

func TestValidationErrorParsesFieldDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"}]}`))
	})

	_, err := c.Signup(context.Background(), SignupParams{Email: "bad", Password: "x"})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, apiErr.Kind)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, []string{"body", "email"}, apiErr.Details[0].Loc)
	assert.Equal(t, "value is not a valid email address", apiErr.Details[0].Msg)
	assert.Equal(t, "value_error.email", apiErr.Details[0].Type)
}

func TestValidationErrorWithStringDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"check_in must not be in the future"}`))
	})

	_, err := c.CheckIn(authedContext("org-1"), CheckInParams{ClientID: "c1", CheckIn: time.Now()})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "check_in must not be in the future", apiErr.Message)
	assert.Empty(t, apiErr.Details)
}

func TestStatusTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`, KindAuth, "Could not validate credentials"},
		{"forbidden", http.StatusForbidden, `{"detail":"Not enough privileges"}`, KindAuth, "Not enough privileges"},
		{"not found", http.StatusNotFound, `{"detail":"Client not found"}`, KindNotFound, "Client not found"},
		{"conflict", http.StatusConflict, `{"detail":"Client already checked in"}`, KindConflict, "Client already checked in"},
		{"bad request", http.StatusBadRequest, `{"detail":"Guardian required for child clients"}`, KindConflict, "Guardian required for child clients"},
		{"server error", http.StatusBadGateway, ``, KindTransport, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.GetClient(authedContext("org-1"), "c1")
			require.Error(t, err)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apiErr.Message)
			}
		})
	}
}

func TestCancellationIsMarkedCanceled(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(authedContext("org-1"))
	go func() {
		<-started
		cancel()
	}()

	_, err := c.ActiveVisits(ctx)
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.True(t, apiErr.Canceled)
	assert.False(t, IsRetryable(err))
	assert.True(t, IsCanceled(err))
}

func TestTimeoutIsRetryableTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, HTTPClient: &http.Client{Timeout: 20 * time.Millisecond}})
	require.NoError(t, err)

	_, err = c.ActiveVisits(authedContext("org-1"))
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.False(t, apiErr.Canceled)
	assert.True(t, IsRetryable(err))
}

func TestLoginPostsFormEncoded(t *testing.T) {
	var gotContentType, gotUsername, gotPassword string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})

	token, err := c.Login(context.Background(), LoginParams{Username: "ana@casa.test", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "ana@casa.test", gotUsername)
	assert.Equal(t, "secret", gotPassword)
	assert.Equal(t, "tok", token.AccessToken)
}

func TestPathParamsAreEscaped(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"x"}`))
	})

	_, err := c.GetClient(authedContext("org-1"), "weird/id")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/admin/clients/weird%2Fid", gotPath)
}

func TestCheckInSendsQueryParameters(t *testing.T) {
	var gotClientID, gotCheckIn string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.URL.Query().Get("client_id")
		gotCheckIn = r.URL.Query().Get("check_in")
		w.Write([]byte(`{"id":"v1","client_id":"c1"}`))
	})

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	_, err := c.CheckIn(authedContext("org-1"), CheckInParams{ClientID: "c1", CheckIn: at})
	require.NoError(t, err)
	assert.Equal(t, "c1", gotClientID)
	assert.Equal(t, "2026-03-14T15:09:26Z", gotCheckIn)
}
