package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatter is satisfied by *pgxpool.Pool.
type PoolStatter interface {
	Stat() *pgxpool.Stat
}

// RegisterPgxPoolMetrics exposes pgx connection pool statistics as Prometheus gauges.
func RegisterPgxPoolMetrics(reg prometheus.Registerer, pool PoolStatter) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "shopadmin_pgxpool_acquired_conns",
			Help: "Number of currently acquired connections in the pool",
		}, func() float64 {
			return float64(pool.Stat().AcquiredConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "shopadmin_pgxpool_max_conns",
			Help: "Maximum number of connections in the pool",
		}, func() float64 {
			return float64(pool.Stat().MaxConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "shopadmin_pgxpool_total_conns",
			Help: "Total number of connections in the pool",
		}, func() float64 {
			return float64(pool.Stat().TotalConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "shopadmin_pgxpool_idle_conns",
			Help: "Number of idle connections in the pool",
		}, func() float64 {
			return float64(pool.Stat().IdleConns())
		}),
	)
}

// FeedStatter reports the state of the live order feed.
type FeedStatter interface {
	Subscribers() int
	Dropped() uint64
}

// RegisterOrderFeedMetrics exposes order stream subscriber and drop counts.
func RegisterOrderFeedMetrics(reg prometheus.Registerer, feed FeedStatter) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "shopadmin_order_stream_subscribers",
			Help: "Number of connected order stream clients",
		}, func() float64 {
			return float64(feed.Subscribers())
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "shopadmin_order_stream_dropped_total",
			Help: "Order events dropped because a subscriber was too slow",
		}, func() float64 {
			return float64(feed.Dropped())
		}),
	)
}
