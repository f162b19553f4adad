package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"
	"box-office/internal/pricing"
	"box-office/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetPerformanceBookings(ctx context.Context, performanceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// QuoteBooking prices the booking under an explicit discount combination.
	QuoteBooking(ctx context.Context, bookingID string, req *request.QuoteRequest) (*response.PriceResponse, error)
	PayBooking(ctx context.Context, bookingID string, req *request.PayBookingRequest) (*response.PayBookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingPayments(ctx context.Context, bookingID string) ([]response.PaymentResponse, error)
}

// Locker runs fn while holding a named lock.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

type bookingService struct {
	repo      *repository.Repository
	catalogue *catalogue
	payments  PaymentService
	locker    Locker
	selector  *pricing.Selector
	metrics   *metrics.Pricing
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	catalogue *catalogue,
	payments PaymentService,
	locker Locker,
	selector *pricing.Selector,
	m *metrics.Pricing,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		catalogue: catalogue,
		payments:  payments,
		locker:    locker,
		selector:  selector,
		metrics:   m,
		log:       log.With(zap.String("service", "booking")),
	}
}

// performanceLockKey guards the capacity check and insert of one
// performance. The lock is not renewed, so both must finish within
// LOCK_TTL_SECONDS; the context handed to them is cancelled when it runs out.
func performanceLockKey(id uuid.UUID) string {
	return "lock:performance:" + id.String()
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}
	performanceID, err := parseID("performance", req.PerformanceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tickets := make([]entity.Ticket, len(req.Tickets))
	for i, t := range req.Tickets {
		seatGroupID, err := parseID("seat group", t.SeatGroupID)
		if err != nil {
			return nil, err
		}
		concessionID, err := parseID("concession type", t.ConcessionTypeID)
		if err != nil {
			return nil, err
		}
		tickets[i] = entity.Ticket{
			BaseSimple:       entity.NewBaseSimple(now),
			SeatGroupID:      seatGroupID,
			ConcessionTypeID: concessionID,
		}
	}

	performance, err := s.repo.Performance.FindByID(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("get performance: %w", err)
	}
	if performance == nil {
		return nil, notFound("performance", performanceID)
	}
	if !performance.IsUpcoming(now) {
		return nil, fmt.Errorf("performance %s has already started: %w", performanceID, ErrInvalidState)
	}

	if err := s.checkConcessions(ctx, tickets); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Base:          entity.NewBase(now),
		Reference:     uuid.New(),
		PerformanceID: performanceID,
		Status:        entity.BookingStatusInProgress,
		Tickets:       tickets,
	}
	for i := range booking.Tickets {
		booking.Tickets[i].BookingID = booking.ID
	}

	err = s.locker.WithLock(ctx, performanceLockKey(performanceID), func(ctx context.Context) error {
		if err := s.checkCapacity(ctx, performance, tickets); err != nil {
			return err
		}
		return s.repo.Booking.CreateWithTickets(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrCapacity) {
			s.log.Info("Booking rejected", zap.Error(err), zap.String("performance_id", performanceID.String()))
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_reference", booking.Reference.String()),
		zap.String("performance_id", performanceID.String()),
		zap.Int("tickets", len(tickets)),
	)

	resp := response.BookingToResponse(booking)
	if quote, err := s.bestQuote(ctx, booking); err != nil {
		s.log.Warn("Price new booking", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	} else {
		resp.Price = response.QuoteToResponse(quote)
	}
	return &resp, nil
}

func (s *bookingService) checkConcessions(ctx context.Context, tickets []entity.Ticket) error {
	concessions, err := s.repo.Concession.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("get concession types: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(concessions))
	for _, c := range concessions {
		known[c.ID] = true
	}
	for _, t := range tickets {
		if !known[t.ConcessionTypeID] {
			return notFound("concession type", t.ConcessionTypeID)
		}
	}
	return nil
}

// checkCapacity rejects tickets for seat groups the performance does not
// offer or has not priced, and any seat group or performance total that
// would be oversold. It must run under the performance lock.
func (s *bookingService) checkCapacity(ctx context.Context, performance *entity.Performance, tickets []entity.Ticket) error {
	groups, err := s.repo.Performance.FindSeatGroups(ctx, performance.ID)
	if err != nil {
		return fmt.Errorf("get performance seat groups: %w", err)
	}
	venueGroups, err := s.repo.Venue.FindSeatGroupsByVenueID(ctx, performance.VenueID)
	if err != nil {
		return fmt.Errorf("get seat groups: %w", err)
	}
	booked, err := s.repo.Booking.CountTicketsBySeatGroup(ctx, performance.ID)
	if err != nil {
		return fmt.Errorf("count tickets: %w", err)
	}

	names := make(map[uuid.UUID]string, len(venueGroups))
	for _, g := range venueGroups {
		names[g.ID] = g.Name
	}
	offered := make(map[uuid.UUID]*entity.PerformanceSeatGroup, len(groups))
	for _, g := range groups {
		offered[g.SeatGroupID] = g
	}

	requested := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, t := range tickets {
		g, ok := offered[t.SeatGroupID]
		if !ok {
			return &ValidationError{Fields: map[string]string{
				"tickets": fmt.Sprintf("Seat group %s is not available for this performance", t.SeatGroupID),
			}}
		}
		if g.Price == nil {
			return fmt.Errorf("seat group %s: %w", t.SeatGroupID, pricing.ErrPriceNotConfigured)
		}
		if requested[t.SeatGroupID] == 0 {
			order = append(order, t.SeatGroupID)
		}
		requested[t.SeatGroupID]++
	}

	capacity := newPerformanceCapacity(performance, groups, booked)
	for _, id := range order {
		if remaining := capacity.groups[id].remaining; requested[id] > remaining {
			return &CapacityError{SeatGroup: names[id], Requested: requested[id], Remaining: remaining}
		}
	}
	if len(tickets) > capacity.remaining {
		return &CapacityError{Requested: len(tickets), Remaining: capacity.remaining}
	}
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking", id)
	}
	return booking, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	quote, err := s.bestQuote(ctx, booking)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	resp.Price = response.QuoteToResponse(quote)
	return &resp, nil
}

func (s *bookingService) GetPerformanceBookings(ctx context.Context, performanceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
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

	bookings, err := s.repo.Booking.FindByPerformanceID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	total, err := s.repo.Booking.CountByPerformanceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.Limit(), total), nil
}

func (s *bookingService) QuoteBooking(ctx context.Context, bookingID string, req *request.QuoteRequest) (*response.PriceResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, booking)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]pricing.Discount, len(snap.Discounts))
	for _, d := range snap.Discounts {
		byID[d.ID] = d
	}
	combo := make(pricing.Combination, 0, len(req.DiscountIDs))
	for _, raw := range req.DiscountIDs {
		id, err := parseID("discount", raw)
		if err != nil {
			return nil, err
		}
		d, ok := byID[id]
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{
				"discount_ids": fmt.Sprintf("Discount %s is not offered for this performance", id),
			}}
		}
		combo = append(combo, d)
	}

	if len(combo) > 0 && !combo.IsValid(snap.Tickets) {
		return nil, fmt.Errorf("booking %s: %w", booking.ID, pricing.ErrInvalidCombination)
	}

	quote, err := pricing.Evaluate(snap, combo)
	if err != nil {
		return nil, fmt.Errorf("quote booking %s: %w", booking.ID, err)
	}
	return response.QuoteToResponse(quote), nil
}

func (s *bookingService) PayBooking(ctx context.Context, bookingID string, req *request.PayBookingRequest) (*response.PayBookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanPay() {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, ErrInvalidState)
	}

	quote, err := s.bestQuote(ctx, booking)
	if err != nil {
		return nil, err
	}
	if req.Amount != quote.Total {
		s.log.Warn("Payment amount mismatch",
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("expected", quote.Total),
			zap.Int64("amount", req.Amount),
		)
		return nil, fmt.Errorf("expected %d, got %d: %w", quote.Total, req.Amount, ErrAmountMismatch)
	}

	payment := s.payments.NewPayment(booking, entity.PaymentProvider(req.Provider), req.Amount, req.TransactionID)
	booking.MarkPaid(quote.Total, payment.CreatedAt)

	if err := s.repo.Booking.UpdateWithPayment(ctx, booking, payment); err != nil {
		return nil, fmt.Errorf("pay booking: %w", err)
	}

	s.log.Info("Booking paid",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("provider", req.Provider),
		zap.Int64("value", payment.Value),
	)

	resp := &response.PayBookingResponse{
		Booking: response.BookingToResponse(booking),
		Payment: response.PaymentToResponse(payment),
	}
	resp.Booking.Price = response.QuoteToResponse(quote)
	return resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Cancel(time.Now()) {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, ErrInvalidState)
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingPayments(ctx context.Context, bookingID string) ([]response.PaymentResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.payments.GetPayments(ctx, booking)
}

// snapshot freezes everything the pricing core needs for one booking.
func (s *bookingService) snapshot(ctx context.Context, booking *entity.Booking) (pricing.Snapshot, error) {
	groups, err := s.repo.Performance.FindSeatGroups(ctx, booking.PerformanceID)
	if err != nil {
		return pricing.Snapshot{}, fmt.Errorf("get performance seat groups: %w", err)
	}
	discounts, err := s.catalogue.Discounts(ctx, booking.PerformanceID)
	if err != nil {
		return pricing.Snapshot{}, err
	}
	costs, err := s.repo.MiscCost.FindAll(ctx)
	if err != nil {
		return pricing.Snapshot{}, fmt.Errorf("get misc costs: %w", err)
	}

	snap := pricing.Snapshot{
		Tickets:   make([]pricing.Ticket, len(booking.Tickets)),
		Discounts: discounts,
		Prices:    make(pricing.PriceTable, len(groups)),
		MiscCosts: make([]pricing.MiscCost, len(costs)),
	}
	for i, t := range booking.Tickets {
		snap.Tickets[i] = pricing.Ticket{SeatGroupID: t.SeatGroupID, ConcessionTypeID: t.ConcessionTypeID}
	}
	for _, g := range groups {
		if g.Price != nil {
			snap.Prices[g.SeatGroupID] = *g.Price
		}
	}
	for i, c := range costs {
		snap.MiscCosts[i] = toPricingMiscCost(c)
	}
	return snap, nil
}

func (s *bookingService) bestQuote(ctx context.Context, booking *entity.Booking) (*pricing.Quote, error) {
	snap, err := s.snapshot(ctx, booking)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.selector.Best(snap)
	elapsed := time.Since(start)
	if err != nil {
		result := "error"
		if errors.Is(err, pricing.ErrSearchSpaceTooLarge) {
			result = "too_large"
		}
		s.metrics.ObserveSearch(result, 0, elapsed)
		s.log.Warn("Best price search failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int("tickets", len(snap.Tickets)),
			zap.Int("discounts", len(snap.Discounts)),
		)
		return nil, fmt.Errorf("price booking %s: %w", booking.ID, err)
	}

	s.metrics.ObserveSearch("ok", res.Candidates, elapsed)
	s.log.Debug("Best price found",
		zap.String("booking_id", booking.ID.String()),
		zap.Int("candidates", res.Candidates),
		zap.Int("valid", res.Valid),
		zap.Int("evaluated", res.Evaluated),
		zap.Int64("total", res.Quote.Total),
		zap.Duration("elapsed", elapsed),
	)
	return res.Quote, nil
}
