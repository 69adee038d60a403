package core

import (
	"time"

	"github.com/edvin/shopadmin/internal/moderation"
	"github.com/edvin/shopadmin/internal/storage"
)

// Deps are the collaborators shared by the services.
type Deps struct {
	Storage           storage.Storage
	Flagger           *moderation.Flagger
	Events            OrderPublisher
	StatsCache        StatsCache
	StatsCacheTTL     time.Duration
	LowStockThreshold int
	JWTSecret         string
	JWTIssuer         string
	TokenTTL          time.Duration
}

type Services struct {
	Product    *ProductService
	Category   *CategoryService
	Collection *CollectionService
	AgeGroup   *AgeGroupService
	Color      *ColorService
	Material   *MaterialService
	Order      *OrderService
	Payment    *PaymentService
	Coupon     *CouponService
	Customer   *CustomerService
	Banner     *BannerService
	Review     *ReviewService
	Dashboard  *DashboardService
	Auth       *AuthService
	AuditLog   *AuditLogService
	Search     *SearchService
}

func NewServices(db DB, deps Deps) *Services {
	coupons := NewCouponService(db)
	orders := NewOrderService(db, coupons, deps.Events)
	return &Services{
		Product:    NewProductService(db),
		Category:   NewCategoryService(db),
		Collection: NewCollectionService(db),
		AgeGroup:   NewAgeGroupService(db, deps.Storage),
		Color:      NewColorService(db),
		Material:   NewMaterialService(db),
		Order:      orders,
		Payment:    NewPaymentService(db, orders),
		Coupon:     coupons,
		Customer:   NewCustomerService(db),
		Banner:     NewBannerService(db, deps.Storage),
		Review:     NewReviewService(db, deps.Flagger),
		Dashboard:  NewDashboardService(db, deps.StatsCache, deps.StatsCacheTTL, deps.LowStockThreshold),
		Auth:       NewAuthService(db, deps.JWTSecret, deps.JWTIssuer, deps.TokenTTL),
		AuditLog:   NewAuditLogService(db),
		Search:     NewSearchService(db),
	}
}
