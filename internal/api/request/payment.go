package request

// CreatePayment records a payment taken outside a provider integration,
// such as cash on delivery or a bank transfer.
type CreatePayment struct {
	OrderID     string `json:"order_id" validate:"required,uuid"`
	Provider    string `json:"provider" validate:"required,max=60"`
	Method      string `json:"method" validate:"required,oneof=card paypal bank_transfer cod"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
	Status      string `json:"status" validate:"omitempty,oneof=pending succeeded failed"`
	ProviderRef string `json:"provider_ref" validate:"max=200"`
}
