package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"
	"box-office/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductionService interface {
	CreateProduction(ctx context.Context, req *request.CreateProductionRequest) (*response.ProductionResponse, error)
	GetProductions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductionResponse], error)
	GetProductionByID(ctx context.Context, productionID string) (*response.ProductionResponse, error)
	DeleteProduction(ctx context.Context, productionID string) error

	CreatePerformance(ctx context.Context, productionID string, req *request.CreatePerformanceRequest) (*response.PerformanceResponse, error)
	GetPerformanceByID(ctx context.Context, performanceID string) (*response.PerformanceResponse, error)
	SetPerformanceSeatGroup(ctx context.Context, performanceID, seatGroupID string, req *request.SetSeatGroupRequest) (*response.PerformanceResponse, error)
}

type productionService struct {
	repo      *repository.Repository
	catalogue *catalogue
	log       *zap.Logger
}

func NewProductionService(repo *repository.Repository, catalogue *catalogue, log *zap.Logger) ProductionService {
	return &productionService{
		repo:      repo,
		catalogue: catalogue,
		log:       log.With(zap.String("service", "production")),
	}
}

func (s *productionService) CreateProduction(ctx context.Context, req *request.CreateProductionRequest) (*response.ProductionResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create production validation failed", zap.Error(err))
		return nil, err
	}

	production := &entity.Production{
		Base:        entity.NewBase(time.Now()),
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		AgeRating:   req.AgeRating,
	}
	if err := s.repo.Production.Create(ctx, production); err != nil {
		return nil, fmt.Errorf("create production: %w", err)
	}

	s.log.Info("Production created", zap.String("production_id", production.ID.String()), zap.String("name", production.Name))

	resp := response.ProductionToResponse(production)
	return &resp, nil
}

func (s *productionService) GetProductions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductionResponse], error) {
	productions, err := s.repo.Production.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get productions: %w", err)
	}

	total, err := s.repo.Production.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count productions: %w", err)
	}

	productionResponses := make([]response.ProductionResponse, len(productions))
	for i, p := range productions {
		productionResponses[i] = response.ProductionToResponse(p)
	}

	return response.NewPaginatedResponse(productionResponses, req.Page, req.Limit(), total), nil
}

func (s *productionService) GetProductionByID(ctx context.Context, productionID string) (*response.ProductionResponse, error) {
	id, err := parseID("production", productionID)
	if err != nil {
		return nil, err
	}

	production, err := s.repo.Production.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get production: %w", err)
	}
	if production == nil {
		return nil, notFound("production", id)
	}

	performances, err := s.repo.Performance.FindByProductionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performances: %w", err)
	}

	resp := response.ProductionToResponse(production)
	for _, p := range performances {
		resp.Performances = append(resp.Performances, response.PerformanceToResponse(p))
	}
	return &resp, nil
}

func (s *productionService) DeleteProduction(ctx context.Context, productionID string) error {
	id, err := parseID("production", productionID)
	if err != nil {
		return err
	}

	production, err := s.repo.Production.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get production: %w", err)
	}
	if production == nil {
		return notFound("production", id)
	}

	if err := s.repo.Production.SoftDelete(ctx, id, time.Now()); err != nil {
		return fmt.Errorf("delete production: %w", err)
	}

	s.log.Info("Production deleted", zap.String("production_id", id.String()))
	return nil
}

func (s *productionService) CreatePerformance(ctx context.Context, productionID string, req *request.CreatePerformanceRequest) (*response.PerformanceResponse, error) {
	id, err := parseID("production", productionID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create performance validation failed", zap.Error(err))
		return nil, err
	}
	venueID, err := parseID("venue", req.VenueID)
	if err != nil {
		return nil, err
	}

	production, err := s.repo.Production.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get production: %w", err)
	}
	if production == nil {
		return nil, notFound("production", id)
	}

	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if venue == nil {
		return nil, notFound("venue", venueID)
	}

	venueGroups, err := s.repo.Venue.FindSeatGroupsByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get seat groups: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.SeatGroup, len(venueGroups))
	for _, g := range venueGroups {
		byID[g.ID] = g
	}

	now := time.Now()
	performance := &entity.Performance{
		Base:             entity.NewBase(now),
		ProductionID:     id,
		VenueID:          venueID,
		DoorsOpen:        req.DoorsOpen,
		Start:            req.Start,
		End:              req.End,
		ExtraInformation: req.ExtraInformation,
		CapacityOverride: req.Capacity,
	}

	var groups []*entity.PerformanceSeatGroup
	if len(req.SeatGroups) == 0 {
		// offer the whole venue, prices to be set later
		for _, g := range venueGroups {
			groups = append(groups, &entity.PerformanceSeatGroup{
				BaseNoDelete:  entity.NewBaseNoDelete(now),
				PerformanceID: performance.ID,
				SeatGroupID:   g.ID,
				Capacity:      g.Capacity,
			})
		}
	}
	for _, sg := range req.SeatGroups {
		seatGroupID, err := parseID("seat group", sg.SeatGroupID)
		if err != nil {
			return nil, err
		}
		venueGroup, ok := byID[seatGroupID]
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{
				"seat_groups": fmt.Sprintf("Seat group %s is not in venue %s or listed twice", seatGroupID, venueID),
			}}
		}
		delete(byID, seatGroupID)

		capacity := venueGroup.Capacity
		if sg.Capacity != nil {
			capacity = *sg.Capacity
		}
		groups = append(groups, &entity.PerformanceSeatGroup{
			BaseNoDelete:  entity.NewBaseNoDelete(now),
			PerformanceID: performance.ID,
			SeatGroupID:   seatGroupID,
			Price:         sg.Price,
			Capacity:      capacity,
		})
	}

	if err := s.repo.Performance.CreateWithSeatGroups(ctx, performance, groups); err != nil {
		return nil, fmt.Errorf("create performance: %w", err)
	}

	s.log.Info("Performance created",
		zap.String("performance_id", performance.ID.String()),
		zap.String("production_id", id.String()),
		zap.Time("start", performance.Start),
		zap.Int("seat_groups", len(groups)),
	)

	return s.performanceDetail(ctx, performance)
}

func (s *productionService) GetPerformanceByID(ctx context.Context, performanceID string) (*response.PerformanceResponse, error) {
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

	return s.performanceDetail(ctx, performance)
}

func (s *productionService) SetPerformanceSeatGroup(ctx context.Context, performanceID, seatGroupID string, req *request.SetSeatGroupRequest) (*response.PerformanceResponse, error) {
	id, err := parseID("performance", performanceID)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID("seat group", seatGroupID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	performance, err := s.repo.Performance.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performance: %w", err)
	}
	if performance == nil {
		return nil, notFound("performance", id)
	}

	seatGroup, err := s.repo.Venue.FindSeatGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get seat group: %w", err)
	}
	if seatGroup == nil || seatGroup.VenueID != performance.VenueID {
		return nil, notFound("seat group", groupID)
	}

	existing, err := s.repo.Performance.FindSeatGroups(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performance seat groups: %w", err)
	}

	now := time.Now()
	group := &entity.PerformanceSeatGroup{
		BaseNoDelete:  entity.NewBaseNoDelete(now),
		PerformanceID: id,
		SeatGroupID:   groupID,
		Capacity:      seatGroup.Capacity,
	}
	for _, g := range existing {
		if g.SeatGroupID == groupID {
			group.Price = g.Price
			group.Capacity = g.Capacity
		}
	}
	if req.Price != nil {
		group.Price = req.Price
	}
	if req.Capacity != nil {
		group.Capacity = *req.Capacity
	}
	group.UpdatedAt = now

	if err := s.repo.Performance.UpsertSeatGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("set performance seat group: %w", err)
	}

	s.log.Info("Performance seat group set",
		zap.String("performance_id", id.String()),
		zap.String("seat_group_id", groupID.String()),
		zap.Int64p("price", group.Price),
		zap.Int("capacity", group.Capacity),
	)

	return s.performanceDetail(ctx, performance)
}

// performanceDetail adds seat groups, remaining capacity and the
// concession display prices to a performance.
func (s *productionService) performanceDetail(ctx context.Context, performance *entity.Performance) (*response.PerformanceResponse, error) {
	groups, err := s.repo.Performance.FindSeatGroups(ctx, performance.ID)
	if err != nil {
		return nil, fmt.Errorf("get performance seat groups: %w", err)
	}
	venueGroups, err := s.repo.Venue.FindSeatGroupsByVenueID(ctx, performance.VenueID)
	if err != nil {
		return nil, fmt.Errorf("get seat groups: %w", err)
	}
	booked, err := s.repo.Booking.CountTicketsBySeatGroup(ctx, performance.ID)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	discounts, err := s.catalogue.Discounts(ctx, performance.ID)
	if err != nil {
		return nil, err
	}
	concessions, err := s.concessionsOffered(ctx, discounts)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(venueGroups))
	for _, g := range venueGroups {
		names[g.ID] = g.Name
	}

	capacity := newPerformanceCapacity(performance, groups, booked)
	resp := response.PerformanceToResponse(performance)
	resp.Capacity = capacity.total
	resp.CapacityRemaining = capacity.remaining

	for _, g := range groups {
		item := response.PerformanceSeatGroupResponse{
			SeatGroupID: g.SeatGroupID.String(),
			Name:        names[g.SeatGroupID],
			Price:       g.Price,
			Capacity:    g.Capacity,
			Remaining:   capacity.groups[g.SeatGroupID].remaining,
		}
		if g.Price != nil {
			for _, c := range concessions {
				item.ConcessionPrices = append(item.ConcessionPrices, response.ConcessionPriceResponse{
					ConcessionTypeID: c.ID.String(),
					Name:             c.Name,
					Price:            pricing.ConcessionPrice(discounts, g.SeatGroupID, c.ID, *g.Price),
				})
			}
		}
		resp.SeatGroups = append(resp.SeatGroups, item)
	}

	return &resp, nil
}

// concessionsOffered lists the concession types named by any discount, by id.
func (s *productionService) concessionsOffered(ctx context.Context, discounts []pricing.Discount) ([]*entity.ConcessionType, error) {
	wanted := make(map[uuid.UUID]bool)
	for _, d := range discounts {
		for _, req := range d.Requirements {
			wanted[req.ConcessionTypeID] = true
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	all, err := s.repo.Concession.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get concession types: %w", err)
	}

	var offered []*entity.ConcessionType
	for _, c := range all {
		if wanted[c.ID] {
			offered = append(offered, c)
		}
	}
	sort.Slice(offered, func(i, j int) bool {
		return offered[i].ID.String() < offered[j].ID.String()
	})
	return offered, nil
}
