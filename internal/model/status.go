package model

// Product status constants.
const (
	ProductDraft    = "draft"
	ProductActive   = "active"
	ProductArchived = "archived"
)

// Order status constants.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Payment status constants.
const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Review status constants.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Customer status constants.
const (
	CustomerActive  = "active"
	CustomerBlocked = "blocked"
)

// Coupon type constants.
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

// orderTransitions lists the statuses an order may move to from each status.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped:   {OrderDelivered, OrderRefunded},
	OrderDelivered: {OrderRefunded},
}

// CanTransitionOrder reports whether an order in status from may move to status to.
func CanTransitionOrder(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
