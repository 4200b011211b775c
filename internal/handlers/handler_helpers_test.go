package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func respondWith(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		respondServiceError(c, err)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	return w
}

func TestValidationErrorRendersFields(t *testing.T) {
	w := respondWith(t, &backend.APIError{
		Kind:       backend.KindValidation,
		StatusCode: 422,
		Message:    "validation failed",
		Details: []backend.FieldError{
			{Loc: []string{"body", "email"}, Msg: "invalid email", Type: "value_error.email"},
		},
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Equal(t, "VALIDATION_FAILED", gjson.Get(body, "error.code").String())
	assert.Equal(t, "invalid email", gjson.Get(body, "error.fields.0.msg").String())
}

func TestAuthErrorCarriesNextPath(t *testing.T) {
	w := respondWith(t, &backend.APIError{Kind: backend.KindAuth, StatusCode: 401, Message: "token expired"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/test", gjson.Get(w.Body.String(), "error.next").String())
}

func TestForbiddenHasNoNextPath(t *testing.T) {
	w := respondWith(t, &backend.APIError{Kind: backend.KindAuth, StatusCode: 403, Message: "not allowed"})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, gjson.Get(w.Body.String(), "error.next").Exists())
}

func TestConflictMessageRendersVerbatim(t *testing.T) {
	w := respondWith(t, &backend.APIError{Kind: backend.KindConflict, StatusCode: 409, Message: "Client already checked in"})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Client already checked in", gjson.Get(w.Body.String(), "error.message").String())
}

func TestTransportErrorBecomesBadGateway(t *testing.T) {
	w := respondWith(t, &backend.APIError{Kind: backend.KindTransport, Message: "connection refused"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCanceledErrorProducesNoBody(t *testing.T) {
	w := respondWith(t, &backend.APIError{Kind: backend.KindTransport, Message: "canceled", Canceled: true})

	assert.Empty(t, w.Body.String())
}

func TestUnknownErrorIsInternal(t *testing.T) {
	w := respondWith(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServiceSentinelsMapToStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation sentinel", services.ErrGuardianRequired, http.StatusBadRequest},
		{"missing session", services.ErrNoSession, http.StatusUnauthorized},
		{"missing organization", services.ErrNoOrganization, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respondWith(t, tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
