package core

import (
	"context"
	"fmt"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

type AuditLogService struct {
	db DB
}

func NewAuditLogService(db DB) *AuditLogService {
	return &AuditLogService{db: db}
}

func (s *AuditLogService) Create(ctx context.Context, e *model.AuditLog) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO audit_logs (id, admin_id, method, path, resource_type, resource_id, status_code, request_body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.AdminID, e.Method, e.Path, e.ResourceType, e.ResourceID, e.StatusCode, e.RequestBody, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns one page of audit entries, newest first. Extra filters:
// admin_id, resource_type, method.
func (s *AuditLogService) List(ctx context.Context, params request.ListParams) ([]model.AuditLog, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`path ILIKE $%d`, "%"+params.Search+"%")
	}
	if v := params.Filter("admin_id"); v != "" {
		c.add(`admin_id = $%d`, v)
	}
	if v := params.Filter("resource_type"); v != "" {
		c.add(`resource_type = $%d`, v)
	}
	if v := params.Filter("method"); v != "" {
		c.add(`method = $%d`, v)
	}
	if params.From != nil {
		c.add(`created_at >= $%d`, *params.From)
	}
	if params.To != nil {
		c.add(`created_at <= $%d`, *params.To)
	}

	total, err := countRows(ctx, s.db, "audit_logs", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	suffix, args := c.page(params, map[string]string{"created_at": "created_at"}, "created_at")
	rows, err := s.db.Query(ctx,
		`SELECT id, admin_id, method, path, resource_type, resource_id, status_code, request_body, created_at
		 FROM audit_logs`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Method, &e.Path, &e.ResourceType, &e.ResourceID,
			&e.StatusCode, &e.RequestBody, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, total, nil
}
