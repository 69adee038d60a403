package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
)

func TestCouponCreate_Display(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		value   int
		display string
	}{
		{"percentage", "percentage", 15, "15%"},
		{"fixed", "fixed", 1000, "$10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(handlerMockDB)
			h := NewCoupon(core.NewCouponService(db))
			db.On("Exec", mock.Anything, sqlContaining("INSERT INTO coupons"), mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

			rec := httptest.NewRecorder()
			h.Create(rec, newRequest(http.MethodPost, "/user/coupons", map[string]any{
				"code": "spring15", "type": tt.typ, "value": tt.value,
			}))

			require.Equal(t, http.StatusCreated, rec.Code)
			var c model.Coupon
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
			assert.Equal(t, "SPRING15", c.Code)
			assert.Equal(t, tt.display, c.DisplayValue)
			assert.True(t, c.Active)
			assert.False(t, c.StartsAt.IsZero())
		})
	}
}

func TestCouponCreate_PercentageOver100(t *testing.T) {
	h := NewCoupon(nil)
	rec := httptest.NewRecorder()

	h.Create(rec, newRequest(http.MethodPost, "/user/coupons", map[string]any{
		"code": "HUGE", "type": "percentage", "value": 150,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCouponCreate_UnknownType(t *testing.T) {
	h := NewCoupon(nil)
	rec := httptest.NewRecorder()

	h.Create(rec, newRequest(http.MethodPost, "/user/coupons", map[string]any{
		"code": "FREE", "type": "bogo", "value": 1,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCouponDelete_NotFound(t *testing.T) {
	db := new(handlerMockDB)
	h := NewCoupon(core.NewCouponService(db))
	db.On("Exec", mock.Anything, sqlContaining("DELETE FROM coupons"), []any{validID}).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	rec := httptest.NewRecorder()
	h.Delete(rec, withChiURLParam(httptest.NewRequest(http.MethodDelete, "/user/coupons/"+validID, nil), "id", validID))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
