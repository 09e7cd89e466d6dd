package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
	"github.com/edvin/pos/internal/model"
)

type Billing struct {
	svc *core.BillingService
}

func NewBilling(svc *core.BillingService) *Billing {
	return &Billing{svc: svc}
}

func (h *Billing) List(w http.ResponseWriter, r *http.Request) {
	f := request.ParseBillingFilter(r)
	pg := request.ParsePagination(r)

	bills, total, err := h.svc.List(r.Context(), f, pg)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}

	response.WritePaginated(w, http.StatusOK, bills, total, pg.Page, pg.PageSize, pg.PageCount(total))
}

// Export streams the filtered bill list as a CSV attachment.
func (h *Billing) Export(w http.ResponseWriter, r *http.Request) {
	f := request.ParseBillingFilter(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="bills-%s.csv"`, time.Now().Format("2006-01-02")))

	if err := h.svc.ExportCSV(r.Context(), f, w); err != nil {
		// The CSV headers are already committed, so a JSON error body
		// would only corrupt the stream. Log and stop writing.
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("bill export failed")
	}
}
