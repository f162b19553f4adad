package usecase

import (
	"box-office/internal/data/repository"
	"box-office/internal/pricing"
	"box-office/pkg/cache"
	"box-office/pkg/lock"
	"box-office/pkg/metrics"
	"box-office/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Venue      VenueService
	Production ProductionService
	Discount   DiscountService
	Booking    BookingService
	Payment    PaymentService
}

// NewService wires every service. rdb backs the discount cache and the
// booking lock; m may be nil.
func NewService(repo *repository.Repository, config *utils.Config, rdb *redis.Client, m *metrics.Metrics, log *zap.Logger) *Service {
	catalogue := newCatalogue(repo.Discount, cache.NewCache(rdb, config.Redis.CacheTTL, config.App.Name+":"), log)
	locker := lock.NewLocker(rdb, config.Redis.LockTTL, log)
	selector := pricing.NewSelector(pricing.Limits{MaxCandidates: config.Pricing.MaxCandidates})

	var pricingMetrics *metrics.Pricing
	if m != nil {
		pricingMetrics = m.Pricing
	}

	payment := NewPaymentService(repo.Payment, log)
	return &Service{
		Venue:      NewVenueService(repo.Venue, log),
		Production: NewProductionService(repo, catalogue, log),
		Discount:   NewDiscountService(repo, catalogue, log),
		Booking:    NewBookingService(repo, catalogue, payment, locker, selector, pricingMetrics, log),
		Payment:    payment,
	}
}
