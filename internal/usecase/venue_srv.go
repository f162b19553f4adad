package usecase

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"

	"go.uber.org/zap"
)

type VenueService interface {
	CreateVenue(ctx context.Context, req *request.CreateVenueRequest) (*response.VenueResponse, error)
	GetVenues(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VenueResponse], error)
	GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error)
	CreateSeatGroup(ctx context.Context, venueID string, req *request.CreateSeatGroupRequest) (*response.SeatGroupResponse, error)
}

type venueService struct {
	repo repository.VenueRepository
	log  *zap.Logger
}

func NewVenueService(repo repository.VenueRepository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.CreateVenueRequest) (*response.VenueResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create venue validation failed", zap.Error(err))
		return nil, err
	}

	venue := &entity.Venue{
		Base:             entity.NewBase(time.Now()),
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		InternalCapacity: req.InternalCapacity,
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created", zap.String("venue_id", venue.ID.String()), zap.String("name", venue.Name))

	resp := response.VenueToResponse(venue, nil)
	return &resp, nil
}

func (s *venueService) GetVenues(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VenueResponse], error) {
	venues, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get venues: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count venues: %w", err)
	}

	venueResponses := make([]response.VenueResponse, len(venues))
	for i, v := range venues {
		venueResponses[i] = response.VenueToResponse(v, nil)
	}

	return response.NewPaginatedResponse(venueResponses, req.Page, req.Limit(), total), nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	id, err := parseID("venue", venueID)
	if err != nil {
		return nil, err
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if venue == nil {
		return nil, notFound("venue", id)
	}

	groups, err := s.repo.FindSeatGroupsByVenueID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat groups: %w", err)
	}

	resp := response.VenueToResponse(venue, groups)
	return &resp, nil
}

func (s *venueService) CreateSeatGroup(ctx context.Context, venueID string, req *request.CreateSeatGroupRequest) (*response.SeatGroupResponse, error) {
	id, err := parseID("venue", venueID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if venue == nil {
		return nil, notFound("venue", id)
	}

	group := &entity.SeatGroup{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		VenueID:      id,
		Name:         req.Name,
		Description:  req.Description,
		Capacity:     req.Capacity,
		IsInternal:   req.IsInternal,
	}
	if err := s.repo.CreateSeatGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create seat group: %w", err)
	}

	s.log.Info("Seat group created",
		zap.String("venue_id", id.String()),
		zap.String("seat_group_id", group.ID.String()),
		zap.Int("capacity", group.Capacity),
	)

	resp := response.SeatGroupToResponse(group)
	return &resp, nil
}
