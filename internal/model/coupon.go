package model

import "time"

type Coupon struct {
	ID                  string     `json:"id" db:"id"`
	Code                string     `json:"code" db:"code"`
	Type                string     `json:"type" db:"type"`
	Value               int64      `json:"value" db:"value"`
	MinOrderAmountCents int64      `json:"min_order_amount_cents" db:"min_order_amount_cents"`
	MaxUses             int        `json:"max_uses" db:"max_uses"`
	UsedCount           int        `json:"used_count" db:"used_count"`
	StartsAt            time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt              *time.Time `json:"ends_at" db:"ends_at"`
	Active              bool       `json:"active" db:"active"`
	DisplayValue        string     `json:"display_value" db:"-"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
