package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/cache"
	"github.com/edvin/shopadmin/internal/core"
)

func TestDashboardAnalytics_InvalidDays(t *testing.T) {
	h := NewDashboard(core.NewDashboardService(new(handlerMockDB), nil, 0, 5))
	rec := httptest.NewRecorder()

	h.Analytics(rec, httptest.NewRequest(http.MethodGet, "/dashboard/analytics?days=week", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid days: week", decodeErrorResponse(rec)["error"])
}

func TestDashboardAnalytics_ZeroFilled(t *testing.T) {
	db := new(handlerMockDB)
	h := NewDashboard(core.NewDashboardService(db, nil, 0, 5))
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(newHandlerMockRows(), nil)

	rec := httptest.NewRecorder()
	h.Analytics(rec, httptest.NewRequest(http.MethodGet, "/dashboard/analytics?days=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var a core.Analytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 7, a.Days)
	assert.Len(t, a.Daily, 7)
	assert.Equal(t, a.To, a.Daily[6].Date)
	assert.NotNil(t, a.TopProducts)
	assert.Zero(t, a.TotalRevenueCents)
}

func TestDashboardStats_FromCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	rc := cache.NewRedisCache(client)

	cached := core.DashboardStats{Products: 12, PendingOrders: 3, OrdersByStatus: []core.StatusCount{}}
	require.NoError(t, rc.Set(context.Background(), "dashboard:stats", cached, time.Minute))

	// No database expectations: a cache hit must not query.
	db := new(handlerMockDB)
	h := NewDashboard(core.NewDashboardService(db, rc, time.Minute, 5))

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got core.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 12, got.Products)
	assert.Equal(t, 3, got.PendingOrders)
	db.AssertExpectations(t)
}

func TestDashboardStats_Computed(t *testing.T) {
	db := new(handlerMockDB)
	h := NewDashboard(core.NewDashboardService(db, nil, 0, 5))
	db.On("QueryRow", mock.Anything, sqlContaining("FROM products WHERE stock < $1"), []any{5}).
		Return(&handlerMockRow{scanFunc: func(dest ...any) error {
			for i, d := range dest {
				switch v := d.(type) {
				case *int:
					*v = i + 1
				case *int64:
					*v = 99900
				}
			}
			return nil
		}})
	db.On("Query", mock.Anything, sqlContaining("GROUP BY status"), mock.Anything).
		Return(newHandlerMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "pending"
			*(dest[1].(*int)) = 7
			return nil
		}), nil)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got core.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Products)
	assert.Equal(t, 3, got.LowStockProducts)
	assert.Equal(t, int64(99900), got.RevenueCents)
	assert.Equal(t, []core.StatusCount{{Status: "pending", Count: 7}}, got.OrdersByStatus)
}
