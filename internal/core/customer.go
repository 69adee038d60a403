package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

// Order totals only count orders that were not cancelled or refunded.
const customerColumns = `c.id, c.name, c.email, c.phone, c.status,
	(SELECT count(*) FROM orders o WHERE o.customer_id = c.id),
	(SELECT COALESCE(sum(o.total_cents), 0)::bigint FROM orders o WHERE o.customer_id = c.id
	  AND o.status NOT IN ('cancelled', 'refunded')),
	c.created_at, c.updated_at`

var customerSortColumns = map[string]string{
	"name":       "c.name",
	"email":      "c.email",
	"created_at": "c.created_at",
}

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.OrderCount, &c.TotalSpentCents,
		&c.CreatedAt, &c.UpdatedAt)
}

type CustomerService struct {
	db DB
}

func NewCustomerService(db DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(ctx context.Context, c *model.Customer) error {
	if c.Status == "" {
		c.Status = model.CustomerActive
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO customers (id, name, email, phone, status, created_at, updated_at)
		 VALUES ($1, $2, lower($3), $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.Phone, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create customer %s", c.Email)
	}
	return nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := scanCustomer(s.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers c WHERE c.id = $1`, id), &c); err != nil {
		return nil, dbError(err, "get customer %s", id)
	}
	return &c, nil
}

// List returns one page of customers. Search matches name and email.
func (s *CustomerService) List(ctx context.Context, params request.ListParams) ([]model.Customer, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`(c.name ILIKE $%[1]d OR c.email ILIKE $%[1]d)`, "%"+params.Search+"%")
	}
	if params.Status != "" {
		c.add(`c.status = $%d`, params.Status)
	}

	total, err := countRows(ctx, s.db, "customers c", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	suffix, args := c.page(params, customerSortColumns, "c.created_at")
	rows, err := s.db.Query(ctx, `SELECT `+customerColumns+` FROM customers c`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var cu model.Customer
		if err := scanCustomer(rows, &cu); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, cu)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, total, nil
}

// Update changes name, phone and status when set and returns the customer.
func (s *CustomerService) Update(ctx context.Context, id string, name, phone, status *string) (*model.Customer, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE customers SET name = COALESCE($2, name), phone = COALESCE($3, phone),
		 status = COALESCE($4, status), updated_at = now() WHERE id = $1`,
		id, name, phone, status,
	)
	if err != nil {
		return nil, dbError(err, "update customer %s", id)
	}
	if err := notFound(tag, "update customer %s", id); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
