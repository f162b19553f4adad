package usecase

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DiscountService interface {
	CreateConcessionType(ctx context.Context, req *request.CreateConcessionTypeRequest) (*response.ConcessionTypeResponse, error)
	GetConcessionTypes(ctx context.Context) ([]response.ConcessionTypeResponse, error)

	CreateDiscount(ctx context.Context, req *request.CreateDiscountRequest) (*response.DiscountResponse, error)
	DeleteDiscount(ctx context.Context, discountID string) error
	GetPerformanceDiscounts(ctx context.Context, performanceID string) ([]response.DiscountResponse, error)

	CreateMiscCost(ctx context.Context, req *request.CreateMiscCostRequest) (*response.MiscCostResponse, error)
	GetMiscCosts(ctx context.Context) ([]response.MiscCostResponse, error)
}

type discountService struct {
	repo      *repository.Repository
	catalogue *catalogue
	log       *zap.Logger
}

func NewDiscountService(repo *repository.Repository, catalogue *catalogue, log *zap.Logger) DiscountService {
	return &discountService{
		repo:      repo,
		catalogue: catalogue,
		log:       log.With(zap.String("service", "discount")),
	}
}

func (s *discountService) CreateConcessionType(ctx context.Context, req *request.CreateConcessionTypeRequest) (*response.ConcessionTypeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	concession := &entity.ConcessionType{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := s.repo.Concession.Create(ctx, concession); err != nil {
		return nil, fmt.Errorf("create concession type: %w", err)
	}

	s.log.Info("Concession type created", zap.String("concession_type_id", concession.ID.String()), zap.String("name", concession.Name))

	resp := response.ConcessionTypeToResponse(concession)
	return &resp, nil
}

func (s *discountService) GetConcessionTypes(ctx context.Context) ([]response.ConcessionTypeResponse, error) {
	concessions, err := s.repo.Concession.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get concession types: %w", err)
	}

	resp := make([]response.ConcessionTypeResponse, len(concessions))
	for i, c := range concessions {
		resp[i] = response.ConcessionTypeToResponse(c)
	}
	return resp, nil
}

func (s *discountService) CreateDiscount(ctx context.Context, req *request.CreateDiscountRequest) (*response.DiscountResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create discount validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	discount := &entity.Discount{
		Base: entity.NewBase(now),
		Name: req.Name,
		Rate: req.Rate,
	}

	if req.SeatGroupID != nil {
		seatGroupID, err := parseID("seat group", *req.SeatGroupID)
		if err != nil {
			return nil, err
		}
		group, err := s.repo.Venue.FindSeatGroupByID(ctx, seatGroupID)
		if err != nil {
			return nil, fmt.Errorf("get seat group: %w", err)
		}
		if group == nil {
			return nil, notFound("seat group", seatGroupID)
		}
		discount.SeatGroupID = &seatGroupID
	}

	seen := make(map[uuid.UUID]bool, len(req.Requirements))
	for _, r := range req.Requirements {
		concessionID, err := parseID("concession type", r.ConcessionTypeID)
		if err != nil {
			return nil, err
		}
		if seen[concessionID] {
			return nil, &ValidationError{Fields: map[string]string{
				"requirements": fmt.Sprintf("Concession type %s listed twice", concessionID),
			}}
		}
		seen[concessionID] = true

		concession, err := s.repo.Concession.FindByID(ctx, concessionID)
		if err != nil {
			return nil, fmt.Errorf("get concession type: %w", err)
		}
		if concession == nil {
			return nil, notFound("concession type", concessionID)
		}

		discount.Requirements = append(discount.Requirements, entity.DiscountRequirement{
			BaseSimple:       entity.NewBaseSimple(now),
			DiscountID:       discount.ID,
			ConcessionTypeID: concessionID,
			Number:           r.Number,
		})
	}

	performanceIDs := make([]uuid.UUID, 0, len(req.PerformanceIDs))
	for _, raw := range req.PerformanceIDs {
		performanceID, err := parseID("performance", raw)
		if err != nil {
			return nil, err
		}
		performance, err := s.repo.Performance.FindByID(ctx, performanceID)
		if err != nil {
			return nil, fmt.Errorf("get performance: %w", err)
		}
		if performance == nil {
			return nil, notFound("performance", performanceID)
		}
		performanceIDs = append(performanceIDs, performanceID)
	}

	if err := s.repo.Discount.Create(ctx, discount, performanceIDs); err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}
	s.catalogue.Invalidate(ctx, performanceIDs...)

	s.log.Info("Discount created",
		zap.String("discount_id", discount.ID.String()),
		zap.String("name", discount.Name),
		zap.Float64("rate", discount.Rate),
		zap.Int("requirements", len(discount.Requirements)),
		zap.Int("performances", len(performanceIDs)),
	)

	resp := response.DiscountToResponse(toPricingDiscount(discount))
	return &resp, nil
}

func (s *discountService) DeleteDiscount(ctx context.Context, discountID string) error {
	id, err := parseID("discount", discountID)
	if err != nil {
		return err
	}

	discount, err := s.repo.Discount.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get discount: %w", err)
	}
	if discount == nil {
		return notFound("discount", id)
	}

	performanceIDs, err := s.repo.Discount.FindPerformanceIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("get discount performances: %w", err)
	}

	if err := s.repo.Discount.SoftDelete(ctx, id, time.Now()); err != nil {
		return fmt.Errorf("delete discount: %w", err)
	}
	s.catalogue.Invalidate(ctx, performanceIDs...)

	s.log.Info("Discount deleted", zap.String("discount_id", id.String()), zap.Int("performances", len(performanceIDs)))
	return nil
}

func (s *discountService) GetPerformanceDiscounts(ctx context.Context, performanceID string) ([]response.DiscountResponse, error) {
	id, err := parseID("performance", performanceID)
	if err != nil {
		return nil, err
	}

	performance, err := s.repo.Performance.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performance: %w", err)
	}
	if performance == nil {
		return nil, notFound("performance", id)
	}

	discounts, err := s.catalogue.Discounts(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]response.DiscountResponse, len(discounts))
	for i, d := range discounts {
		resp[i] = response.DiscountToResponse(d)
	}
	return resp, nil
}

func (s *discountService) CreateMiscCost(ctx context.Context, req *request.CreateMiscCostRequest) (*response.MiscCostResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	cost := &entity.MiscCost{
		Base:        entity.NewBase(time.Now()),
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Percentage:  req.Percentage,
	}
	if err := s.repo.MiscCost.Create(ctx, cost); err != nil {
		return nil, fmt.Errorf("create misc cost: %w", err)
	}

	s.log.Info("Misc cost created", zap.String("misc_cost_id", cost.ID.String()), zap.String("kind", string(cost.Kind())))

	resp := response.MiscCostToResponse(cost)
	return &resp, nil
}

func (s *discountService) GetMiscCosts(ctx context.Context) ([]response.MiscCostResponse, error) {
	costs, err := s.repo.MiscCost.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get misc costs: %w", err)
	}

	resp := make([]response.MiscCostResponse, len(costs))
	for i, c := range costs {
		resp[i] = response.MiscCostToResponse(c)
	}
	return resp, nil
}
