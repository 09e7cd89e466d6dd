package handler

import (
	"net/http"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
)

type Analytics struct {
	svc *core.AnalyticsService
}

func NewAnalytics(svc *core.AnalyticsService) *Analytics {
	return &Analytics{svc: svc}
}

// Snapshot serves the full reporting payload for one filter specification.
func (h *Analytics) Snapshot(w http.ResponseWriter, r *http.Request) {
	f := request.ParseAnalyticsFilter(r)

	snap, err := h.svc.Snapshot(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, snap)
}
