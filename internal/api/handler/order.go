package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
	"github.com/edvin/pos/internal/model"
)

type Order struct {
	svc *core.OrderService
}

func NewOrder(svc *core.OrderService) *Order {
	return &Order{svc: svc}
}

func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	f := request.ParseOrderFilter(r)
	pg := request.ParsePagination(r)

	orders, total, err := h.svc.List(r.Context(), f, pg)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	response.WritePaginated(w, http.StatusOK, orders, total, pg.Page, pg.PageSize, pg.PageCount(total))
}

func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, order)
}

func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, order)
}

func (h *Order) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateOrder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, order)
}

func (h *Order) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StatusCounts serves the live register counters shown above the order
// queue.
func (h *Order) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.StatusCounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, counts)
}
