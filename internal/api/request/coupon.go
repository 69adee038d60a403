package request

import "time"

// CreateCoupon is used for both create and full update. Fixed values are
// in cents; percentage values must not exceed 100.
type CreateCoupon struct {
	Code                string     `json:"code" validate:"required,min=3,max=40,alphanum"`
	Type                string     `json:"type" validate:"required,oneof=percentage fixed"`
	Value               int64      `json:"value" validate:"required,gt=0"`
	MinOrderAmountCents int64      `json:"min_order_amount_cents" validate:"gte=0"`
	MaxUses             int        `json:"max_uses" validate:"gte=0"`
	StartsAt            *time.Time `json:"starts_at"`
	EndsAt              *time.Time `json:"ends_at"`
	Active              *bool      `json:"active"`
}

type UpdateCoupon = CreateCoupon
