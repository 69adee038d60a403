package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServices(t *testing.T) {
	db := &mockDB{}

	svcs := NewServices(db, Deps{JWTSecret: "secret"})

	require.NotNil(t, svcs)
	assert.NotNil(t, svcs.Product)
	assert.NotNil(t, svcs.Category)
	assert.NotNil(t, svcs.Collection)
	assert.NotNil(t, svcs.AgeGroup)
	assert.NotNil(t, svcs.Color)
	assert.NotNil(t, svcs.Material)
	assert.NotNil(t, svcs.Order)
	assert.NotNil(t, svcs.Payment)
	assert.NotNil(t, svcs.Coupon)
	assert.NotNil(t, svcs.Customer)
	assert.NotNil(t, svcs.Banner)
	assert.NotNil(t, svcs.Review)
	assert.NotNil(t, svcs.Dashboard)
	assert.NotNil(t, svcs.Auth)
	assert.NotNil(t, svcs.AuditLog)
	assert.NotNil(t, svcs.Search)

	// Orders and payments share the coupon service.
	assert.Same(t, svcs.Coupon, svcs.Order.coupons)
	assert.Same(t, svcs.Order, svcs.Payment.orders)
}
