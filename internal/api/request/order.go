package request

import "encoding/json"

type CreateOrder struct {
	CustomerID      string            `json:"customer_id" validate:"required,uuid"`
	Currency        string            `json:"currency" validate:"omitempty,len=3,uppercase"`
	CouponCode      string            `json:"coupon_code" validate:"omitempty,max=40"`
	ShippingAddress json.RawMessage   `json:"shipping_address"`
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderItem struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gt=0,lte=1000"`
}

type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled refunded"`
}
