package request

type CreateProduct struct {
	Name                string          `json:"name" validate:"required,max=200"`
	Slug                string          `json:"slug" validate:"omitempty,slug"`
	Description         string          `json:"description" validate:"max=10000"`
	CategoryID          *string         `json:"category_id" validate:"omitempty,uuid"`
	PriceCents          int64           `json:"price_cents" validate:"gte=0"`
	CompareAtPriceCents *int64          `json:"compare_at_price_cents" validate:"omitempty,gte=0"`
	SKU                 string          `json:"sku" validate:"required,sku"`
	Stock               int             `json:"stock" validate:"gte=0"`
	Status              string          `json:"status" validate:"omitempty,oneof=draft active archived"`
	ImageURL            string          `json:"image_url" validate:"omitempty,url"`
	Variants            []CreateVariant `json:"variants" validate:"omitempty,dive"`
}

// UpdateProduct replaces every editable field of a product.
type UpdateProduct struct {
	Name                string  `json:"name" validate:"required,max=200"`
	Slug                string  `json:"slug" validate:"omitempty,slug"`
	Description         string  `json:"description" validate:"max=10000"`
	CategoryID          *string `json:"category_id" validate:"omitempty,uuid"`
	PriceCents          int64   `json:"price_cents" validate:"gte=0"`
	CompareAtPriceCents *int64  `json:"compare_at_price_cents" validate:"omitempty,gte=0"`
	SKU                 string  `json:"sku" validate:"required,sku"`
	Stock               int     `json:"stock" validate:"gte=0"`
	Status              string  `json:"status" validate:"required,oneof=draft active archived"`
	ImageURL            string  `json:"image_url" validate:"omitempty,url"`
}

// PatchProduct changes only the fields that are present.
type PatchProduct struct {
	Status     *string `json:"status" validate:"omitempty,oneof=draft active archived"`
	Stock      *int    `json:"stock" validate:"omitempty,gte=0"`
	PriceCents *int64  `json:"price_cents" validate:"omitempty,gte=0"`
}

type CreateVariant struct {
	SKU        string  `json:"sku" validate:"required,sku"`
	ColorID    *string `json:"color_id" validate:"omitempty,uuid"`
	MaterialID *string `json:"material_id" validate:"omitempty,uuid"`
	AgeGroupID *string `json:"age_group_id" validate:"omitempty,uuid"`
	Size       string  `json:"size" validate:"max=20"`
	PriceCents *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
}

type UpdateVariant = CreateVariant
