package response

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// PaginatedResponse wraps a list with page-based pagination metadata.
type PaginatedResponse struct {
	Items     any `json:"items"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	PageCount int `json:"page_count"`
}

// WritePaginated writes a paginated JSON response. PageCount is
// ceil(total / pageSize); a page past the end carries an empty items list,
// not an error.
func WritePaginated(w http.ResponseWriter, status int, items any, total, page, pageSize, pageCount int) {
	WriteJSON(w, status, PaginatedResponse{
		Items:     items,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
	})
}
