package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/api/handler"
	mw "github.com/edvin/shopadmin/internal/api/middleware"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
)

// Pinger reports whether the database is reachable. Implemented by
// *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure the HTTP surface of the admin API.
type Options struct {
	CORSOrigins []string
	// UploadDir is served under /uploads when the local storage driver is
	// in use. Empty disables the route.
	UploadDir string
}

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	db          Pinger
	feed        handler.OrderFeed
	opts        Options
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, db Pinger, services *core.Services, feed handler.OrderFeed, opts Options) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		db:          db,
		feed:        feed,
		opts:        opts,
		auditLogger: mw.NewAuditLogger(services.AuditLog, logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.opts.CORSOrigins))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	if s.opts.UploadDir != "" {
		s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.opts.UploadDir))))
	}

	auth := handler.NewAuth(s.services.Auth)
	s.router.Post("/auth/login", auth.Login)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Auth))
		r.Use(s.auditLogger.Middleware)

		r.Get("/me", auth.Me)

		// Dashboard
		dashboard := handler.NewDashboard(s.services.Dashboard)
		r.Get("/dashboard/stats", dashboard.Stats)
		r.Get("/dashboard/analytics", dashboard.Analytics)

		// Audit logs
		audit := handler.NewAudit(s.services.AuditLog)
		r.Get("/audit-logs", audit.List)

		search := handler.NewSearch(s.services.Search)
		r.Get("/search", search.Search)

		// Products and variants
		product := handler.NewProduct(s.services.Product)
		r.Get("/products", product.List)
		r.Post("/products", product.Create)
		r.Get("/products/export", product.Export)
		r.Get("/products/{id}", product.Get)
		r.Put("/products/{id}", product.Update)
		r.Patch("/products/{id}", product.Patch)
		r.Delete("/products/{id}", product.Delete)
		r.Get("/products/{productID}/variants", product.ListVariants)
		r.Post("/products/{productID}/variants", product.CreateVariant)
		r.Get("/variants/grouped", product.GroupedVariants)
		r.Put("/variants/{id}", product.UpdateVariant)
		r.Delete("/variants/{id}", product.DeleteVariant)

		// Categories
		category := handler.NewCategory(s.services.Category)
		r.Get("/categories", category.List)
		r.Post("/categories", category.Create)
		r.Get("/categories/tree", category.Tree)
		r.Get("/categories/{id}", category.Get)
		r.Patch("/categories/{id}", category.Update)
		r.Delete("/categories/{id}", category.Delete)

		// Collections
		collection := handler.NewCollection(s.services.Collection)
		r.Get("/collections", collection.List)
		r.Post("/collections", collection.Create)
		r.Get("/collections/{id}", collection.Get)
		r.Put("/collections/{id}", collection.Update)
		r.Delete("/collections/{id}", collection.Delete)
		r.Put("/collections/{id}/products/{productID}", collection.AddProduct)
		r.Delete("/collections/{id}/products/{productID}", collection.RemoveProduct)

		// Attribute lookups
		ageGroup := handler.NewAgeGroup(s.services.AgeGroup)
		r.Get("/ages", ageGroup.List)
		r.Post("/ages", ageGroup.Create)
		r.Get("/ages/{id}", ageGroup.Get)
		r.Put("/ages/{id}", ageGroup.Update)
		r.Delete("/ages/{id}", ageGroup.Delete)

		color := handler.NewColor(s.services.Color)
		r.Get("/colors", color.List)
		r.Post("/colors", color.Create)
		r.Put("/colors/{id}", color.Update)
		r.Delete("/colors/{id}", color.Delete)

		material := handler.NewMaterial(s.services.Material)
		r.Get("/materials", material.List)
		r.Post("/materials", material.Create)
		r.Put("/materials/{id}", material.Update)
		r.Delete("/materials/{id}", material.Delete)

		// Orders
		order := handler.NewOrder(s.services.Order, s.feed)
		r.Get("/orders", order.List)
		r.Post("/orders", order.Create)
		r.Get("/orders/stream", order.Stream)
		r.Get("/orders/{id}", order.Get)
		r.Patch("/orders/{id}/status", order.UpdateStatus)

		// Payments
		payment := handler.NewPayment(s.services.Payment)
		r.Get("/admin/payments", payment.List)
		r.Post("/admin/payments", payment.Create)
		r.Get("/admin/payments/{id}", payment.Get)
		r.Post("/admin/payments/{id}/refund", payment.Refund)

		// Coupons
		coupon := handler.NewCoupon(s.services.Coupon)
		r.Get("/user/coupons", coupon.List)
		r.Post("/user/coupons", coupon.Create)
		r.Get("/user/coupons/{id}", coupon.Get)
		r.Put("/user/coupons/{id}", coupon.Update)
		r.Delete("/user/coupons/{id}", coupon.Delete)

		// Customers
		customer := handler.NewCustomer(s.services.Customer, s.services.Order)
		r.Get("/customers", customer.List)
		r.Post("/customers", customer.Create)
		r.Get("/customers/{id}", customer.Get)
		r.Patch("/customers/{id}", customer.Update)
		r.Get("/customers/{id}/orders", customer.Orders)

		// Banners
		banner := handler.NewBanner(s.services.Banner)
		r.Get("/banners", banner.List)
		r.Post("/banners", banner.Create)
		r.Get("/banners/grouped", banner.Grouped)
		r.Put("/banners/{id}", banner.Update)
		r.Delete("/banners/{id}", banner.Delete)

		// Reviews
		review := handler.NewReview(s.services.Review)
		r.Get("/reviews", review.List)
		r.Post("/reviews", review.Create)
		r.Post("/reviews/scan", review.Scan)
		r.Get("/reviews/{id}", review.Get)
		r.Patch("/reviews/{id}", review.UpdateStatus)
		r.Delete("/reviews/{id}", review.Delete)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.db.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	if healthy {
		response.WriteJSON(w, http.StatusOK, checks)
		return
	}
	response.WriteJSON(w, http.StatusServiceUnavailable, checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close flushes pending audit entries.
func (s *Server) Close() {
	s.auditLogger.Close()
}
