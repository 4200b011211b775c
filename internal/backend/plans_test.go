package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// Editing a plan without touching the addons must resubmit the prices with
// their formatting intact: 5.00 stays 5.00, not 5.
func TestPlanAddonPricesSurviveRoundTrip(t *testing.T) {
	incoming := []byte(`{
		"name": "Pase Mensual",
		"price": 45.50,
		"addons": {"toalla": 5.00, "casillero": 2.75, "invitado": 10}
	}`)

	var params PlanParams
	require.NoError(t, json.Unmarshal(incoming, &params))

	var sentBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var err error
		sentBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1","name":"Pase Mensual","price":45.50}`))
	})

	_, err := c.CreatePlan(authedContext("org-1"), params)
	require.NoError(t, err)

	addons := gjson.GetBytes(sentBody, "addons")
	assert.Equal(t, "5.00", addons.Get("toalla").Raw)
	assert.Equal(t, "2.75", addons.Get("casillero").Raw)
	assert.Equal(t, "10", addons.Get("invitado").Raw)
}

func TestListPlansActiveOnlyQuery(t *testing.T) {
	var gotActiveOnly string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotActiveOnly = r.URL.Query().Get("active_only")
		w.Write([]byte(`{"data":[],"count":0}`))
	})

	_, err := c.ListPlans(authedContext("org-1"), ListPlansParams{Limit: 20, ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "true", gotActiveOnly)

	_, err = c.ListPlans(authedContext("org-1"), ListPlansParams{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, gotActiveOnly)
}
