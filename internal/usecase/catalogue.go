package usecase

import (
	"context"
	"fmt"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/pricing"
	"box-office/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// catalogue serves a performance's discounts in pricing form, read through
// the Redis cache. Cache failures fall back to the database.
type catalogue struct {
	repo  repository.DiscountRepository
	cache *cache.Cache
	log   *zap.Logger
}

func newCatalogue(repo repository.DiscountRepository, c *cache.Cache, log *zap.Logger) *catalogue {
	return &catalogue{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "catalogue")),
	}
}

func catalogueKey(performanceID uuid.UUID) string {
	return "discounts:" + performanceID.String()
}

func (c *catalogue) Discounts(ctx context.Context, performanceID uuid.UUID) ([]pricing.Discount, error) {
	key := catalogueKey(performanceID)

	var cached []pricing.Discount
	found, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.log.Warn("Catalogue cache read failed", zap.Error(err), zap.String("performance_id", performanceID.String()))
	}
	if found {
		return cached, nil
	}

	rows, err := c.repo.FindByPerformanceID(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("load discounts for performance %s: %w", performanceID, err)
	}
	discounts := make([]pricing.Discount, len(rows))
	for i, d := range rows {
		discounts[i] = toPricingDiscount(d)
	}

	if err := c.cache.SetJSON(ctx, key, discounts); err != nil {
		c.log.Warn("Catalogue cache write failed", zap.Error(err), zap.String("performance_id", performanceID.String()))
	}
	return discounts, nil
}

func (c *catalogue) Invalidate(ctx context.Context, performanceIDs ...uuid.UUID) {
	keys := make([]string, len(performanceIDs))
	for i, id := range performanceIDs {
		keys[i] = catalogueKey(id)
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.log.Warn("Catalogue cache invalidation failed", zap.Error(err), zap.Int("performances", len(keys)))
	}
}

func toPricingDiscount(d *entity.Discount) pricing.Discount {
	out := pricing.Discount{
		ID:           d.ID,
		Name:         d.Name,
		Rate:         d.Rate,
		SeatGroupID:  d.SeatGroupID,
		Requirements: make([]pricing.Requirement, len(d.Requirements)),
	}
	for i, req := range d.Requirements {
		out.Requirements[i] = pricing.Requirement{ConcessionTypeID: req.ConcessionTypeID, Number: req.Number}
	}
	return out
}

func toPricingMiscCost(m *entity.MiscCost) pricing.MiscCost {
	out := pricing.MiscCost{Name: m.Name, Kind: pricing.MiscCostKind(m.Kind())}
	if m.Percentage != nil {
		out.Percentage = *m.Percentage
	}
	if m.Value != nil {
		out.Value = *m.Value
	}
	return out
}
