package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/pos/internal/core"
)

func TestDashboardCharts_Empty(t *testing.T) {
	db := new(handlerMockDB)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(emptyRows{}, nil)

	h := NewDashboard(core.NewDashboardService(db))
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/dashboard/charts?range=30d", nil)

	h.Charts(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, "[]", string(body["sales"]))
	assert.JSONEq(t, "[]", string(body["categories"]))
}

func TestAnalyticsSnapshot_QueryError(t *testing.T) {
	db := new(handlerMockDB)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("relation does not exist"))
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(&scanRow{scanFunc: func(dest ...any) error {
			return errors.New("relation does not exist")
		}})

	h := NewAnalytics(core.NewAnalyticsService(db))
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/analytics", nil)

	h.Snapshot(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
