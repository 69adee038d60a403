package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

// Order event types pushed to live dashboards.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderPublisher receives order events as they happen.
type OrderPublisher interface {
	Publish(event model.OrderEvent)
}

const orderColumns = `id, number, customer_id, status, subtotal_cents, discount_cents, total_cents,
	currency, coupon_code, shipping_address, created_at, updated_at`

var orderSortColumns = map[string]string{
	"number":     "number",
	"total":      "total_cents",
	"status":     "status",
	"created_at": "created_at",
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Status, &o.SubtotalCents, &o.DiscountCents,
		&o.TotalCents, &o.Currency, &o.CouponCode, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
}

type OrderService struct {
	db      DB
	coupons *CouponService
	events  OrderPublisher
	now     func() time.Time
}

func NewOrderService(db DB, coupons *CouponService, events OrderPublisher) *OrderService {
	return &OrderService{db: db, coupons: coupons, events: events, now: time.Now}
}

// Create prices the items of o from the catalog, applies its coupon, and
// inserts the order together with its items. Items need only ProductID,
// VariantID and Quantity; names, unit prices and totals are filled in.
func (s *OrderService) Create(ctx context.Context, o *model.Order) error {
	if len(o.Items) == 0 {
		return invalidf("order has no items")
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Number == "" {
		o.Number = platform.NewOrderNumber()
	}
	if len(o.ShippingAddress) == 0 {
		o.ShippingAddress = []byte(`{}`)
	}

	var customerStatus string
	err := s.db.QueryRow(ctx, `SELECT status FROM customers WHERE id = $1`, o.CustomerID).Scan(&customerStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invalidf("customer %s does not exist", o.CustomerID)
		}
		return fmt.Errorf("get order customer %s: %w", o.CustomerID, err)
	}
	if customerStatus == model.CustomerBlocked {
		return conflictf("customer %s is blocked", o.CustomerID)
	}

	if err := s.priceItems(ctx, o); err != nil {
		return err
	}

	o.SubtotalCents = 0
	for _, it := range o.Items {
		o.SubtotalCents += it.UnitPriceCents * int64(it.Quantity)
	}
	o.DiscountCents = 0

	var reserved bool
	if o.CouponCode != nil && *o.CouponCode != "" {
		code := strings.ToUpper(*o.CouponCode)
		o.CouponCode = &code
		coupon, err := s.coupons.GetByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return invalidf("unknown coupon %s", code)
		}
		if err != nil {
			return err
		}
		discount, err := ComputeDiscount(coupon, o.SubtotalCents, s.now())
		if err != nil {
			return err
		}
		if err := s.coupons.Reserve(ctx, coupon.ID); err != nil {
			return err
		}
		reserved = true
		o.DiscountCents = discount
	} else {
		o.CouponCode = nil
	}
	o.TotalCents = o.SubtotalCents - o.DiscountCents

	if err := s.insert(ctx, o); err != nil {
		if reserved {
			_ = s.coupons.Release(ctx, *o.CouponCode)
		}
		return err
	}

	s.publish(EventOrderCreated, o)
	return nil
}

// priceItems fills in names and unit prices for the items of o.
func (s *OrderService) priceItems(ctx context.Context, o *model.Order) error {
	type productInfo struct {
		name   string
		price  int64
		status string
	}
	type variantInfo struct {
		productID string
		size      string
		price     *int64
	}

	productIDs := make([]string, 0, len(o.Items))
	var variantIDs []string
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return invalidf("quantity for product %s must be positive", it.ProductID)
		}
		productIDs = append(productIDs, it.ProductID)
		if it.VariantID != nil {
			variantIDs = append(variantIDs, *it.VariantID)
		}
	}

	products := make(map[string]productInfo)
	rows, err := s.db.Query(ctx, `SELECT id, name, price_cents, status FROM products WHERE id = ANY($1)`, productIDs)
	if err != nil {
		return fmt.Errorf("load order products: %w", err)
	}
	for rows.Next() {
		var id string
		var p productInfo
		if err := rows.Scan(&id, &p.name, &p.price, &p.status); err != nil {
			rows.Close()
			return fmt.Errorf("scan order product: %w", err)
		}
		products[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order products: %w", err)
	}

	variants := make(map[string]variantInfo)
	if len(variantIDs) > 0 {
		rows, err := s.db.Query(ctx, `SELECT id, product_id, size, price_cents FROM variants WHERE id = ANY($1)`, variantIDs)
		if err != nil {
			return fmt.Errorf("load order variants: %w", err)
		}
		for rows.Next() {
			var id string
			var v variantInfo
			if err := rows.Scan(&id, &v.productID, &v.size, &v.price); err != nil {
				rows.Close()
				return fmt.Errorf("scan order variant: %w", err)
			}
			variants[id] = v
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate order variants: %w", err)
		}
	}

	for i := range o.Items {
		it := &o.Items[i]
		p, ok := products[it.ProductID]
		if !ok {
			return invalidf("product %s does not exist", it.ProductID)
		}
		if p.status == model.ProductArchived {
			return invalidf("product %s is archived", it.ProductID)
		}
		if it.ID == "" {
			it.ID = platform.NewID()
		}
		it.OrderID = o.ID
		it.Name = p.name
		it.UnitPriceCents = p.price
		if it.VariantID != nil {
			v, ok := variants[*it.VariantID]
			if !ok || v.productID != it.ProductID {
				return invalidf("variant %s does not belong to product %s", *it.VariantID, it.ProductID)
			}
			if v.size != "" {
				it.Name = p.name + " / " + v.size
			}
			if v.price != nil {
				it.UnitPriceCents = *v.price
			}
		}
	}
	return nil
}

// insert writes the order and its items in a single statement.
func (s *OrderService) insert(ctx context.Context, o *model.Order) error {
	n := len(o.Items)
	ids := make([]string, n)
	productIDs := make([]string, n)
	variantIDs := make([]*string, n)
	names := make([]string, n)
	quantities := make([]int32, n)
	prices := make([]int64, n)
	for i, it := range o.Items {
		ids[i] = it.ID
		productIDs[i] = it.ProductID
		variantIDs[i] = it.VariantID
		names[i] = it.Name
		quantities[i] = int32(it.Quantity)
		prices[i] = it.UnitPriceCents
	}

	_, err := s.db.Exec(ctx,
		`WITH o AS (
			INSERT INTO orders (id, number, customer_id, status, subtotal_cents, discount_cents, total_cents,
			 currency, coupon_code, shipping_address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		)
		INSERT INTO order_items (id, order_id, product_id, variant_id, name, quantity, unit_price_cents)
		SELECT i.id, $1, i.product_id, i.variant_id, i.name, i.quantity, i.unit_price_cents
		FROM unnest($13::uuid[], $14::uuid[], $15::uuid[], $16::text[], $17::int[], $18::bigint[])
		 AS i(id, product_id, variant_id, name, quantity, unit_price_cents)`,
		o.ID, o.Number, o.CustomerID, o.Status, o.SubtotalCents, o.DiscountCents, o.TotalCents,
		o.Currency, o.CouponCode, o.ShippingAddress, o.CreatedAt, o.UpdatedAt,
		ids, productIDs, variantIDs, names, quantities, prices,
	)
	if err != nil {
		return dbError(err, "create order %s", o.Number)
	}
	return nil
}

// GetByID returns the order with its items.
func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	if err := scanOrder(s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &o); err != nil {
		return nil, dbError(err, "get order %s", id)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, order_id, product_id, variant_id, name, quantity, unit_price_cents
		 FROM order_items WHERE order_id = $1 ORDER BY name, id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order %s items: %w", id, err)
	}
	defer rows.Close()

	o.Items = []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Name, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return &o, nil
}

// List returns one page of orders without items. Search matches the order
// number; extra filter customer_id; From and To bound created_at.
func (s *OrderService) List(ctx context.Context, params request.ListParams) ([]model.Order, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`number ILIKE $%d`, "%"+params.Search+"%")
	}
	if params.Status != "" {
		c.add(`status = $%d`, params.Status)
	}
	if v := params.Filter("customer_id"); v != "" {
		c.add(`customer_id = $%d`, v)
	}
	if params.From != nil {
		c.add(`created_at >= $%d`, *params.From)
	}
	if params.To != nil {
		c.add(`created_at <= $%d`, *params.To)
	}

	total, err := countRows(ctx, s.db, "orders", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	suffix, args := c.page(params, orderSortColumns, "created_at")
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus moves an order to status when the lifecycle allows it.
// Cancelling an order gives its coupon use back.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	var current string
	if err := s.db.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current); err != nil {
		return nil, dbError(err, "get order %s", id)
	}
	if !model.CanTransitionOrder(current, status) {
		return nil, conflictf("order %s cannot move from %s to %s", id, current, status)
	}

	var o model.Order
	err := scanOrder(s.db.QueryRow(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3 RETURNING `+orderColumns,
		status, id, current,
	), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, conflictf("order %s was modified concurrently", id)
	}
	if err != nil {
		return nil, dbError(err, "update order %s status", id)
	}

	if status == model.OrderCancelled && o.CouponCode != nil {
		if err := s.coupons.Release(ctx, *o.CouponCode); err != nil {
			return nil, err
		}
	}

	s.publish(EventOrderStatusChanged, &o)
	return &o, nil
}

func (s *OrderService) publish(eventType string, o *model.Order) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.OrderEvent{
		Type:      eventType,
		OrderID:   o.ID,
		Number:    o.Number,
		Status:    o.Status,
		Total:     o.TotalCents,
		Timestamp: s.now().UTC(),
	})
}
