package model

import (
	"encoding/json"
	"time"
)

type Order struct {
	ID              string          `json:"id" db:"id"`
	Number          string          `json:"number" db:"number"`
	CustomerID      string          `json:"customer_id" db:"customer_id"`
	Status          string          `json:"status" db:"status"`
	SubtotalCents   int64           `json:"subtotal_cents" db:"subtotal_cents"`
	DiscountCents   int64           `json:"discount_cents" db:"discount_cents"`
	TotalCents      int64           `json:"total_cents" db:"total_cents"`
	Currency        string          `json:"currency" db:"currency"`
	CouponCode      *string         `json:"coupon_code,omitempty" db:"coupon_code"`
	ShippingAddress json.RawMessage `json:"shipping_address" db:"shipping_address"`
	Items           []OrderItem     `json:"items,omitempty" db:"-"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID             string  `json:"id" db:"id"`
	OrderID        string  `json:"order_id" db:"order_id"`
	ProductID      string  `json:"product_id" db:"product_id"`
	VariantID      *string `json:"variant_id,omitempty" db:"variant_id"`
	Name           string  `json:"name" db:"name"`
	Quantity       int     `json:"quantity" db:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents" db:"unit_price_cents"`
}

// OrderEvent is pushed to live dashboards when an order is created or changes status.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Total     int64     `json:"total_cents"`
	Timestamp time.Time `json:"timestamp"`
}

type Payment struct {
	ID          string    `json:"id" db:"id"`
	OrderID     string    `json:"order_id" db:"order_id"`
	Provider    string    `json:"provider" db:"provider"`
	Method      string    `json:"method" db:"method"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Currency    string    `json:"currency" db:"currency"`
	Status      string    `json:"status" db:"status"`
	ProviderRef string    `json:"provider_ref" db:"provider_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
