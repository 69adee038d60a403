package handler

import (
	"net/http"
	"strconv"

	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
)

type Search struct {
	svc *core.SearchService
}

func NewSearch(svc *core.SearchService) *Search {
	return &Search{svc: svc}
}

type searchResponse struct {
	Results []core.SearchResult `json:"results"`
}

// Search godoc
//
//	@Summary		Quick search
//	@Description	Matches products, variants, categories, customers, orders and coupons by name, SKU, email, number or code.
//	@Tags			Search
//	@Security		BearerAuth
//	@Param			q		query		string	true	"Search term"
//	@Param			limit	query		int		false	"Results per resource type (1-20, default 5)"
//	@Success		200		{object}	searchResponse
//	@Router			/search [get]
func (h *Search) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		response.WriteJSON(w, http.StatusOK, searchResponse{Results: []core.SearchResult{}})
		return
	}

	limit := 5
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 20 {
			limit = parsed
		}
	}

	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, searchResponse{Results: results})
}
