// Package format renders prices and discounts for display.
package format

import "fmt"

// Money formats an amount in cents with the currency symbol.
func Money(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	major := cents / 100
	minor := cents % 100
	switch currency {
	case "USD", "":
		return fmt.Sprintf("%s$%d.%02d", sign, major, minor)
	case "EUR":
		return fmt.Sprintf("%s€%d.%02d", sign, major, minor)
	case "GBP":
		return fmt.Sprintf("%s£%d.%02d", sign, major, minor)
	default:
		return fmt.Sprintf("%s%d.%02d %s", sign, major, minor, currency)
	}
}

// Discount renders a coupon value: percentage coupons as "10%", fixed coupons
// (value in cents) as currency.
func Discount(couponType string, value int64, currency string) string {
	if couponType == "percentage" {
		return fmt.Sprintf("%d%%", value)
	}
	return Money(currency, value)
}
