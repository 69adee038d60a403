package handler

import (
	"net/http"
	"strconv"

	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
)

type Dashboard struct {
	svc *core.DashboardService
}

func NewDashboard(svc *core.DashboardService) *Dashboard {
	return &Dashboard{svc: svc}
}

// Stats godoc
//
//	@Summary		Get dashboard statistics
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Success		200	{object}	core.DashboardStats
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/dashboard/stats [get]
func (h *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, stats)
}

// Analytics godoc
//
//	@Summary		Get chart series
//	@Description	Daily revenue and order counts (zero-filled, UTC days), top products by quantity and revenue by category.
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Param			days	query		int	false	"Window in days (default 30, max 365)"
//	@Success		200		{object}	core.Analytics
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/dashboard/analytics [get]
func (h *Dashboard) Analytics(w http.ResponseWriter, r *http.Request) {
	days := core.DefaultAnalyticsDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, "invalid days: "+v)
			return
		}
		days = n
	}
	a, err := h.svc.Analytics(r.Context(), days)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, a)
}
