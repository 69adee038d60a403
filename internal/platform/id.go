package platform

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// Order numbers avoid 0/O and 1/I so they survive being read over the phone.
const orderAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func NewID() string {
	return uuid.New().String()
}

// NewOrderNumber returns a human readable order number carrying the UTC
// order date, such as ORD-261019-7KQ2M9.
func NewOrderNumber() string {
	return orderNumber(time.Now().UTC())
}

func orderNumber(day time.Time) string {
	return "ORD-" + day.Format("060102") + "-" + randomCode(6)
}

func randomCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = orderAlphabet[b[i]%byte(len(orderAlphabet))]
	}
	return string(b)
}
