package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Amounts travel as integer cents, never as decimal prices.
func TestAmountsEncodeAsIntegerCents(t *testing.T) {
	compareAt := int64(2499)
	cases := map[string]struct {
		v    any
		keys []string
	}{
		"product": {Product{PriceCents: 1999, CompareAtPriceCents: &compareAt}, []string{"price_cents", "compare_at_price_cents"}},
		"order":   {Order{SubtotalCents: 5000, DiscountCents: 500, TotalCents: 4500}, []string{"subtotal_cents", "discount_cents", "total_cents"}},
		"payment": {Payment{AmountCents: 4500}, []string{"amount_cents"}},
		"coupon":  {Coupon{MinOrderAmountCents: 3000}, []string{"min_order_amount_cents"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(tc.v)
			require.NoError(t, err)
			var fields map[string]any
			require.NoError(t, json.Unmarshal(b, &fields))
			for _, k := range tc.keys {
				v, ok := fields[k].(float64)
				require.True(t, ok, "%s missing or not a number", k)
				assert.Equal(t, float64(int64(v)), v, "%s is not whole cents", k)
			}
			assert.NotContains(t, fields, "price")
			assert.NotContains(t, fields, "amount")
		})
	}
}
