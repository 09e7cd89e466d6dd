package handler

import (
	"net/http"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
)

type Dashboard struct {
	svc *core.DashboardService
}

func NewDashboard(svc *core.DashboardService) *Dashboard {
	return &Dashboard{svc: svc}
}

func (h *Dashboard) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.svc.Metrics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, metrics)
}

func (h *Dashboard) Charts(w http.ResponseWriter, r *http.Request) {
	from, to := request.ParseChartRange(r)

	charts, err := h.svc.Charts(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, charts)
}
