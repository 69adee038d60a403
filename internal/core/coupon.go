package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/format"
	"github.com/edvin/shopadmin/internal/model"
)

// DefaultCurrency is used for orders and money display when none is given.
const DefaultCurrency = "USD"

const couponColumns = `id, code, type, value, min_order_amount_cents, max_uses, used_count,
	starts_at, ends_at, active, created_at, updated_at`

var couponSortColumns = map[string]string{
	"code":       "code",
	"value":      "value",
	"used_count": "used_count",
	"ends_at":    "ends_at",
	"created_at": "created_at",
}

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	err := row.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.MinOrderAmountCents, &c.MaxUses, &c.UsedCount,
		&c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		c.DisplayValue = format.Discount(c.Type, c.Value, DefaultCurrency)
	}
	return err
}

// ComputeDiscount returns the discount in cents that coupon c grants on an
// order with the given subtotal at time now. The discount never exceeds
// the subtotal.
func ComputeDiscount(c *model.Coupon, subtotalCents int64, now time.Time) (int64, error) {
	switch {
	case !c.Active:
		return 0, invalidf("coupon %s is not active", c.Code)
	case now.Before(c.StartsAt):
		return 0, invalidf("coupon %s is not valid until %s", c.Code, c.StartsAt.Format(time.DateOnly))
	case c.EndsAt != nil && !now.Before(*c.EndsAt):
		return 0, invalidf("coupon %s expired on %s", c.Code, c.EndsAt.Format(time.DateOnly))
	case c.MaxUses > 0 && c.UsedCount >= c.MaxUses:
		return 0, invalidf("coupon %s has reached its usage limit", c.Code)
	case subtotalCents < c.MinOrderAmountCents:
		return 0, invalidf("coupon %s requires a minimum order of %s", c.Code,
			format.Money(DefaultCurrency, c.MinOrderAmountCents))
	}

	var discount int64
	switch c.Type {
	case model.CouponPercentage:
		discount = subtotalCents * c.Value / 100
	case model.CouponFixed:
		discount = c.Value
	default:
		return 0, invalidf("coupon %s has unknown type %q", c.Code, c.Type)
	}
	return min(discount, subtotalCents), nil
}

func validateCoupon(c *model.Coupon) error {
	if c.Type == model.CouponPercentage && c.Value > 100 {
		return invalidf("percentage coupon value %d exceeds 100", c.Value)
	}
	if c.EndsAt != nil && !c.EndsAt.After(c.StartsAt) {
		return invalidf("coupon ends_at must be after starts_at")
	}
	return nil
}

type CouponService struct {
	db DB
}

func NewCouponService(db DB) *CouponService {
	return &CouponService{db: db}
}

// Create upper-cases the code and inserts the coupon.
func (s *CouponService) Create(ctx context.Context, c *model.Coupon) error {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCoupon(c); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO coupons (id, code, type, value, min_order_amount_cents, max_uses, used_count,
		 starts_at, ends_at, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.Code, c.Type, c.Value, c.MinOrderAmountCents, c.MaxUses, c.UsedCount,
		c.StartsAt, c.EndsAt, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "create coupon %s", c.Code)
	}
	c.DisplayValue = format.Discount(c.Type, c.Value, DefaultCurrency)
	return nil
}

func (s *CouponService) GetByID(ctx context.Context, id string) (*model.Coupon, error) {
	var c model.Coupon
	if err := scanCoupon(s.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id), &c); err != nil {
		return nil, dbError(err, "get coupon %s", id)
	}
	return &c, nil
}

// GetByCode looks a coupon up by its case-insensitive code.
func (s *CouponService) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	code = strings.ToUpper(code)
	if err := scanCoupon(s.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code), &c); err != nil {
		return nil, dbError(err, "get coupon %s", code)
	}
	return &c, nil
}

// List returns one page of coupons. Status is "active", "inactive" or
// "expired"; extra filter type.
func (s *CouponService) List(ctx context.Context, params request.ListParams) ([]model.Coupon, int, error) {
	var c conditions
	if params.Search != "" {
		c.add(`code ILIKE $%d`, "%"+params.Search+"%")
	}
	switch params.Status {
	case "active":
		c.raw(`active AND (ends_at IS NULL OR ends_at > now())`)
	case "inactive":
		c.raw(`NOT active`)
	case "expired":
		c.raw(`ends_at <= now()`)
	}
	if v := params.Filter("type"); v != "" {
		c.add(`type = $%d`, v)
	}

	total, err := countRows(ctx, s.db, "coupons", &c)
	if err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}

	suffix, args := c.page(params, couponSortColumns, "created_at")
	rows, err := s.db.Query(ctx, `SELECT `+couponColumns+` FROM coupons`+c.where()+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var cp model.Coupon
		if err := scanCoupon(rows, &cp); err != nil {
			return nil, 0, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate coupons: %w", err)
	}
	return coupons, total, nil
}

// Update saves every editable field. used_count is left untouched.
func (s *CouponService) Update(ctx context.Context, c *model.Coupon) error {
	c.Code = strings.ToUpper(c.Code)
	if err := validateCoupon(c); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE coupons SET code = $1, type = $2, value = $3, min_order_amount_cents = $4, max_uses = $5,
		 starts_at = $6, ends_at = $7, active = $8, updated_at = now() WHERE id = $9`,
		c.Code, c.Type, c.Value, c.MinOrderAmountCents, c.MaxUses, c.StartsAt, c.EndsAt, c.Active, c.ID,
	)
	if err != nil {
		return dbError(err, "update coupon %s", c.ID)
	}
	c.DisplayValue = format.Discount(c.Type, c.Value, DefaultCurrency)
	return notFound(tag, "update coupon %s", c.ID)
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "delete coupon %s", id)
	}
	return notFound(tag, "delete coupon %s", id)
}

// Reserve counts one use of the coupon, failing when its usage limit has
// been reached in the meantime.
func (s *CouponService) Reserve(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE coupons SET used_count = used_count + 1, updated_at = now()
		 WHERE id = $1 AND (max_uses = 0 OR used_count < max_uses)`, id)
	if err != nil {
		return fmt.Errorf("reserve coupon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return conflictf("coupon %s has reached its usage limit", id)
	}
	return nil
}

// Release gives back a use taken by Reserve.
func (s *CouponService) Release(ctx context.Context, code string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE coupons SET used_count = GREATEST(used_count - 1, 0), updated_at = now() WHERE code = $1`,
		strings.ToUpper(code))
	if err != nil {
		return fmt.Errorf("release coupon %s: %w", code, err)
	}
	return nil
}
