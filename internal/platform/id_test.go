package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewID_ReturnsValidUUIDString(t *testing.T) {
	id := NewID()
	assert.NotEmpty(t, id)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}

func TestNewID_ReturnsUniqueValues(t *testing.T) {
	seen := make(map[string]bool, 100)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestNewOrderNumber_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^ORD-[0-9]{6}-[A-HJ-NP-Z2-9]{6}$`, NewOrderNumber())
	}
}

func TestOrderNumber_CarriesDate(t *testing.T) {
	n := orderNumber(time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC))
	assert.Regexp(t, `^ORD-261019-`, n)
}

func TestNewOrderNumber_ReturnsUniqueValues(t *testing.T) {
	seen := make(map[string]bool, 100)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber()
		assert.False(t, seen[n], "duplicate order number generated: %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, 100)
}
