package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	subs    int
	dropped uint64
}

func (f fakeFeed) Subscribers() int { return f.subs }
func (f fakeFeed) Dropped() uint64  { return f.dropped }

func TestRegisterOrderFeedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterOrderFeedMetrics(reg, fakeFeed{subs: 3, dropped: 7})

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 2)
	values := map[string]float64{}
	for _, mf := range families {
		m := mf.GetMetric()[0]
		if g := m.GetGauge(); g != nil {
			values[mf.GetName()] = g.GetValue()
		}
		if c := m.GetCounter(); c != nil {
			values[mf.GetName()] = c.GetValue()
		}
	}
	assert.Equal(t, 3.0, values["shopadmin_order_stream_subscribers"])
	assert.Equal(t, 7.0, values["shopadmin_order_stream_dropped_total"])
}

func TestNewServer_Healthz(t *testing.T) {
	srv := NewServer(":0", nil)
	rec := httptest.NewRecorder()

	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestNewServer_Readyz(t *testing.T) {
	var dbErr error
	srv := NewServer(":0", func(ctx context.Context) error { return dbErr })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())

	dbErr = errors.New("connection refused")
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
