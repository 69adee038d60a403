package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

const paymentColumns = `id, order_id, provider, method, amount_cents, currency, status, provider_ref, created_at, updated_at`

var paymentSortColumns = map[string]string{
	"amount":     "amount_cents",
	"status":     "status",
	"created_at": "created_at",
}

func scanPayment(row pgx.Row, p *model.Payment) error {
	return row.Scan(&p.ID, &p.OrderID, &p.Provider, &p.Method, &p.AmountCents, &p.Currency,
		&p.Status, &p.ProviderRef, &p.CreatedAt, &p.UpdatedAt)
}

type PaymentService struct {
	db     DB
	orders *OrderService
}

func NewPaymentService(db DB, orders *OrderService) *PaymentService {
	return &PaymentService{db: db, orders: orders}
}

// Create records a payment. A succeeded payment on a pending order marks
// the order paid.
func (s *PaymentService) Create(ctx context.Context, p *model.Payment) error {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO payments (id, order_id, provider, method, amount_cents, currency, status, provider_ref, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.OrderID, p.Provider, p.Method, p.AmountCents, p.Currency, p.Status, p.ProviderRef, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create payment for order %s", p.OrderID)
	}

	if p.Status == model.PaymentSucceeded {
		s.syncOrder(ctx, p.OrderID, model.OrderPaid)
	}
	return nil
}

// syncOrder moves the payment's order to the given status when its
// lifecycle allows it. The payment row is already written at this point, so
// a failure is logged rather than returned; the order can be moved by hand
// with PATCH /orders/{id}/status.
func (s *PaymentService) syncOrder(ctx context.Context, orderID, to string) {
	if s.orders == nil {
		return
	}
	_, err := s.orders.UpdateStatus(ctx, orderID, to)
	if err == nil || errors.Is(err, ErrConflict) {
		return
	}
	zerolog.Ctx(ctx).Warn().Err(err).
		Str("order_id", orderID).
		Str("status", to).
		Msg("payment recorded but order status not updated")
}

func (s *PaymentService) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var p model.Payment
	if err := scanPayment(s.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id), &p); err != nil {
		return nil, dbError(err, "get payment %s", id)
	}
	return &p, nil
}

// List returns one page of payments. Extra filters: method, order_id.
// Search matches the provider reference.
func (s *PaymentService) List(ctx context.Context, params request.ListParams) ([]model.Payment, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`provider_ref ILIKE $%d`, "%"+params.Search+"%")
	}
	if params.Status != "" {
		c.add(`status = $%d`, params.Status)
	}
	if v := params.Filter("method"); v != "" {
		c.add(`method = $%d`, v)
	}
	if v := params.Filter("order_id"); v != "" {
		c.add(`order_id = $%d`, v)
	}
	if params.From != nil {
		c.add(`created_at >= $%d`, *params.From)
	}
	if params.To != nil {
		c.add(`created_at <= $%d`, *params.To)
	}

	total, err := countRows(ctx, s.db, "payments", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	suffix, args := c.page(params, paymentSortColumns, "created_at")
	rows, err := s.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, total, nil
}

// Refund marks a succeeded payment refunded and moves its order to
// refunded when the order lifecycle allows it. Orders that cannot be
// refunded, such as cancelled ones, keep their status.
func (s *PaymentService) Refund(ctx context.Context, id string) (*model.Payment, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.PaymentSucceeded {
		return nil, conflictf("payment %s is %s, only succeeded payments can be refunded", id, current.Status)
	}

	var p model.Payment
	err = scanPayment(s.db.QueryRow(ctx,
		`UPDATE payments SET status = $1, updated_at = now() WHERE id = $2 AND status = $3 RETURNING `+paymentColumns,
		model.PaymentRefunded, id, model.PaymentSucceeded,
	), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, conflictf("payment %s was modified concurrently", id)
	}
	if err != nil {
		return nil, dbError(err, "refund payment %s", id)
	}

	s.syncOrder(ctx, p.OrderID, model.OrderRefunded)
	return &p, nil
}
