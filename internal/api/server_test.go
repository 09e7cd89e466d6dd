package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/pos/internal/config"
)

func newTestServer() *Server {
	cfg := &config.Config{TaxRate: 0.08}
	return NewServer(zerolog.Nop(), nil, cfg, []string{"Appetizers"})
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_OpenAPIDoc(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil)

	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Restaurant POS API")
}

func TestServer_UpdateRoutesAcceptPatch(t *testing.T) {
	srv := newTestServer()

	// A malformed id reaches the handler and gets 400; a 405 would mean
	// the update routes are registered under the wrong method.
	for _, target := range []string{"/api/orders/not-a-uuid", "/api/menu-items/not-a-uuid"} {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, target, nil)

		srv.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/nope", nil)

	srv.ServeHTTP(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CategoriesRoute(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/menu-items/categories", nil)

	srv.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":["Appetizers"]}`, rec.Body.String())
}
