package model

import "time"

type Product struct {
	ID                  string    `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Slug                string    `json:"slug" db:"slug"`
	Description         string    `json:"description" db:"description"`
	CategoryID          *string   `json:"category_id" db:"category_id"`
	PriceCents          int64     `json:"price_cents" db:"price_cents"`
	CompareAtPriceCents *int64    `json:"compare_at_price_cents,omitempty" db:"compare_at_price_cents"`
	SKU                 string    `json:"sku" db:"sku"`
	Stock               int       `json:"stock" db:"stock"`
	Status              string    `json:"status" db:"status"`
	ImageURL            string    `json:"image_url" db:"image_url"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`

	Variants []Variant `json:"variants,omitempty" db:"-"`
}

// Variant is a sellable combination of attributes belonging to a product.
type Variant struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	SKU         string    `json:"sku" db:"sku"`
	ColorID     *string   `json:"color_id" db:"color_id"`
	MaterialID  *string   `json:"material_id" db:"material_id"`
	AgeGroupID  *string   `json:"age_group_id" db:"age_group_id"`
	Size        string    `json:"size" db:"size"`
	PriceCents  *int64    `json:"price_cents,omitempty" db:"price_cents"`
	Stock       int       `json:"stock" db:"stock"`
	ProductName string    `json:"product_name,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// VariantGroup is a product with the variants that belong to it.
type VariantGroup struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Variants    []Variant `json:"variants"`
}
