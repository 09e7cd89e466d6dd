package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
)

func newBillingHandler(db core.DB) *Billing {
	return NewBilling(core.NewBillingService(db))
}

func TestBillingList_Empty(t *testing.T) {
	db := new(handlerMockDB)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(&scanRow{scanFunc: func(dest ...any) error {
			*dest[0].(*int) = 0
			return nil
		}})
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(emptyRows{}, nil)

	h := newBillingHandler(db)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/billing", nil)

	h.List(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body response.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 20, body.PageSize)
	assert.Equal(t, 0, body.PageCount)
	assert.NotNil(t, body.Items, "empty page carries a list, not null")
}

func TestBillingExport_ErrorKeepsStreamClean(t *testing.T) {
	db := new(handlerMockDB)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	h := newBillingHandler(db)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/billing/export", nil)

	h.Export(rec, r)

	// The CSV headers are committed before the query runs; a failure must
	// not splice a JSON error body into the stream.
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), `"error"`)
}

func TestBillingExport_Headers(t *testing.T) {
	db := new(handlerMockDB)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(emptyRows{}, nil)

	h := newBillingHandler(db)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/billing/export", nil)

	h.Export(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "order_number,customer_name,"))
}
