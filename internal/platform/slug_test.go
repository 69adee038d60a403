package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Summer Dress", "summer-dress"},
		{"  Kids' T-Shirt (3-5y) ", "kids-t-shirt-3-5y"},
		{"ALL CAPS", "all-caps"},
		{"---", ""},
		{"", ""},
		{"Café Latte", "caf-latte"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "input %q", tt.in)
	}
}
