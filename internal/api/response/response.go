package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/listing"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError writes err with the status derived from its sentinel.
// Unclassified errors become a 500 with a generic message.
func WriteServiceError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteError(w, status, "internal server error")
		return
	}
	WriteError(w, status, err.Error())
}

// PageResponse is the pagination envelope for list endpoints.
type PageResponse struct {
	Items any `json:"items"`
	listing.PageInfo
}

// WritePage writes one page of items. A nil slice is sent as [].
func WritePage(w http.ResponseWriter, items any, total, page, pageSize int) {
	if v := reflect.ValueOf(items); !v.IsValid() || (v.Kind() == reflect.Slice && v.IsNil()) {
		items = []struct{}{}
	}
	WriteJSON(w, http.StatusOK, PageResponse{
		Items:    items,
		PageInfo: listing.NewPageInfo(total, page, pageSize),
	})
}
