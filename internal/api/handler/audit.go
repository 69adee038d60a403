package handler

import (
	"net/http"

	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
)

type Audit struct {
	svc *core.AuditLogService
}

func NewAudit(svc *core.AuditLogService) *Audit {
	return &Audit{svc: svc}
}

// List godoc
//
//	@Summary		List audit logs
//	@Description	Returns a paginated list of recorded mutating requests. Supports filtering by admin, resource type, HTTP method and date range.
//	@Tags			Audit Logs
//	@Security		BearerAuth
//	@Param			search			query		string	false	"Search in request path"
//	@Param			admin_id		query		string	false	"Filter by admin"
//	@Param			resource_type	query		string	false	"Filter by resource type"
//	@Param			method			query		string	false	"Filter by HTTP method"
//	@Param			from			query		string	false	"Created on or after"
//	@Param			to				query		string	false	"Created on or before"
//	@Success		200				{object}	response.PageResponse{items=[]model.AuditLog}
//	@Failure		400				{object}	response.ErrorResponse
//	@Router			/audit-logs [get]
func (h *Audit) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "admin_id", "resource_type", "method")
	if !ok {
		return
	}
	logs, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, logs, total, params.Page, params.PageSize)
}
