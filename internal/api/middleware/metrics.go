package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopadmin",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopadmin",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	adminActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopadmin",
			Name:      "admin_actions_total",
			Help:      "Successful create, update and delete requests per resource",
		},
		[]string{"resource", "action"},
	)
)

var apiVersion = regexp.MustCompile(`^v[0-9]+$`)

// Metrics records request counts and latency labelled by route pattern, and
// counts successful mutations per shop resource.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())

		action := mutationAction(r.Method)
		if action != "" && ww.status < http.StatusBadRequest && strings.HasPrefix(path, "/api/") {
			if resource := routeResource(path); resource != "" {
				adminActionsTotal.WithLabelValues(resource, action).Inc()
			}
		}
	})
}

func mutationAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// routeResource names the resource a route pattern acts on:
// "/api/v1/user/coupons/{id}" is "coupons", "/api/v1/orders/{id}/status"
// is "orders".
func routeResource(pattern string) string {
	for _, seg := range strings.Split(strings.Trim(pattern, "/"), "/") {
		switch {
		case seg == "" || seg == "api" || seg == "admin" || seg == "user":
		case apiVersion.MatchString(seg), strings.HasPrefix(seg, "{"):
		default:
			return seg
		}
	}
	return ""
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the wrapped writer.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
