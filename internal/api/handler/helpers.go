package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/edvin/pos/internal/api/response"
	"github.com/edvin/pos/internal/core"
)

// writeServiceError maps service errors onto HTTP statuses. Driver-level
// connection failures are masked behind a generic message so internals do
// not leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidTransition):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case strings.Contains(err.Error(), "connection"):
		response.WriteError(w, http.StatusInternalServerError, "database connection failed")
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
