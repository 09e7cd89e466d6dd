package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/pos/internal/api/request"
	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
	"github.com/edvin/pos/internal/model"
)

type MenuItem struct {
	svc        *core.MenuItemService
	categories []string
}

func NewMenuItem(svc *core.MenuItemService, categories []string) *MenuItem {
	return &MenuItem{svc: svc, categories: categories}
}

func (h *MenuItem) List(w http.ResponseWriter, r *http.Request) {
	f := request.ParseMenuItemFilter(r)
	pg := request.ParsePagination(r)

	items, total, err := h.svc.List(r.Context(), f, pg)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []model.MenuItem{}
	}

	response.WritePaginated(w, http.StatusOK, items, total, pg.Page, pg.PageSize, pg.PageCount(total))
}

func (h *MenuItem) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMenuItem
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, item)
}

func (h *MenuItem) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuItem) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateMenuItem
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuItem) Delete(w http.ResponseWriter, r *http.Request) {
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

// Categories serves the configured category list used by the catalog
// forms and filter controls.
func (h *MenuItem) Categories(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string][]string{"categories": h.categories})
}
