package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"
	"box-office/internal/pricing"
	"box-office/pkg/metrics"
	"box-office/pkg/utils"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ctx     context.Context
	svc     *Service
	store   *store
	redis   *miniredis.Miniredis
	metrics *metrics.Metrics

	venue, stalls, circle string
	student, adult        string
	production            string
	performance           string
	studentOff, family    string
}

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T, mutate ...func(*utils.Config)) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	config := &utils.Config{
		App:     utils.AppConfig{Name: "test"},
		Redis:   utils.RedisConfig{CacheTTL: time.Minute, LockTTL: 2 * time.Second},
		Pricing: utils.PricingConfig{MaxCandidates: 1000},
	}
	for _, m := range mutate {
		m(config)
	}

	st := newStore()
	m := metrics.New("test", prometheus.NewRegistry())
	f := &fixture{
		ctx:     context.Background(),
		svc:     NewService(st.repository(), config, client, m, zap.NewNop()),
		store:   st,
		redis:   mr,
		metrics: m,
	}

	venue, err := f.svc.Venue.CreateVenue(f.ctx, &request.CreateVenueRequest{Name: "Winston Theatre"})
	require.NoError(t, err)
	f.venue = venue.ID
	stalls, err := f.svc.Venue.CreateSeatGroup(f.ctx, venue.ID, &request.CreateSeatGroupRequest{Name: "Stalls", Capacity: 10})
	require.NoError(t, err)
	f.stalls = stalls.ID
	circle, err := f.svc.Venue.CreateSeatGroup(f.ctx, venue.ID, &request.CreateSeatGroupRequest{Name: "Circle", Capacity: 4})
	require.NoError(t, err)
	f.circle = circle.ID

	student, err := f.svc.Discount.CreateConcessionType(f.ctx, &request.CreateConcessionTypeRequest{Name: "Student"})
	require.NoError(t, err)
	f.student = student.ID
	adult, err := f.svc.Discount.CreateConcessionType(f.ctx, &request.CreateConcessionTypeRequest{Name: "Adult"})
	require.NoError(t, err)
	f.adult = adult.ID

	production, err := f.svc.Production.CreateProduction(f.ctx, &request.CreateProductionRequest{Name: "Legally Blonde"})
	require.NoError(t, err)
	f.production = production.ID

	f.performance = f.newPerformance(t, nil, ptr(int64(1000)), ptr(int64(800)))

	f.studentOff = f.newDiscount(t, "Student", 0.2, request.RequirementRequest{ConcessionTypeID: f.student, Number: 1})
	f.family = f.newDiscount(t, "Family", 0.2,
		request.RequirementRequest{ConcessionTypeID: f.student, Number: 1},
		request.RequirementRequest{ConcessionTypeID: f.adult, Number: 2},
	)
	return f
}

func (f *fixture) newPerformance(t *testing.T, capacity *int, stallsPrice, circlePrice *int64) string {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	perf, err := f.svc.Production.CreatePerformance(f.ctx, f.production, &request.CreatePerformanceRequest{
		VenueID:  f.venue,
		Start:    start,
		End:      start.Add(2 * time.Hour),
		Capacity: capacity,
		SeatGroups: []request.PerformanceSeatGroupRequest{
			{SeatGroupID: f.stalls, Price: stallsPrice},
			{SeatGroupID: f.circle, Price: circlePrice},
		},
	})
	require.NoError(t, err)
	return perf.ID
}

func (f *fixture) newDiscount(t *testing.T, name string, rate float64, reqs ...request.RequirementRequest) string {
	t.Helper()
	d, err := f.svc.Discount.CreateDiscount(f.ctx, &request.CreateDiscountRequest{
		Name:           name,
		Rate:           rate,
		Requirements:   reqs,
		PerformanceIDs: []string{f.performance},
	})
	require.NoError(t, err)
	return d.ID
}

func (f *fixture) tickets(seatGroup, concession string, n int) []request.TicketRequest {
	out := make([]request.TicketRequest, n)
	for i := range out {
		out[i] = request.TicketRequest{SeatGroupID: seatGroup, ConcessionTypeID: concession}
	}
	return out
}

func (f *fixture) book(t *testing.T, tickets ...[]request.TicketRequest) *response.BookingResponse {
	t.Helper()
	b, err := f.tryBook(f.performance, tickets...)
	require.NoError(t, err)
	return b
}

func (f *fixture) tryBook(performance string, tickets ...[]request.TicketRequest) (*response.BookingResponse, error) {
	var all []request.TicketRequest
	for _, group := range tickets {
		all = append(all, group...)
	}
	return f.svc.Booking.CreateBooking(f.ctx, &request.CreateBookingRequest{PerformanceID: performance, Tickets: all})
}

func TestCreateBookingPricesBestCombination(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, f.tickets(f.stalls, f.student, 2), f.tickets(f.stalls, f.adult, 2))

	assert.Equal(t, entity.BookingStatusInProgress, b.Status)
	assert.Len(t, b.Tickets, 4)
	require.NotNil(t, b.Price)
	assert.Equal(t, int64(4000), b.Price.TicketsPrice)
	assert.Equal(t, int64(3200), b.Price.Total)
	assert.ElementsMatch(t, []string{f.family, f.studentOff}, idStrings(b.Price.DiscountIDs))
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func TestGetBookingShowsBreakdown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Discount.CreateMiscCost(f.ctx, &request.CreateMiscCostRequest{Name: "Theatre improvement levy", Percentage: ptr(0.05)})
	require.NoError(t, err)
	_, err = f.svc.Discount.CreateMiscCost(f.ctx, &request.CreateMiscCostRequest{Name: "Booking fee", Value: ptr(int64(75))})
	require.NoError(t, err)

	created := f.book(t, f.tickets(f.stalls, f.student, 2), f.tickets(f.stalls, f.adult, 2))

	got, err := f.svc.Booking.GetBookingByID(f.ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Price)
	assert.Equal(t, int64(3200), got.Price.Subtotal)
	assert.Equal(t, int64(160+75), got.Price.MiscCostsValue)
	assert.Equal(t, int64(3435), got.Price.Total)
	assert.Len(t, got.Price.Groups, 2)
	for _, g := range got.Price.Groups {
		if g.ConcessionTypeID.String() == f.student {
			assert.Equal(t, int64(800), g.ConcessionPrice)
		} else {
			assert.Equal(t, int64(1000), g.ConcessionPrice)
		}
	}
}

func TestCreateBookingCapacityShortfall(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.tickets(f.circle, f.adult, 3))

	_, err := f.tryBook(f.performance, f.tickets(f.circle, f.adult, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacity)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Circle", capErr.SeatGroup)
	assert.Equal(t, 2, capErr.Requested)
	assert.Equal(t, 1, capErr.Remaining)
	assert.Contains(t, err.Error(), "only 1 seats remaining in Circle but you have booked 2")

	// nothing was stored for the rejected booking
	list, err := f.svc.Booking.GetPerformanceBookings(f.ctx, f.performance, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestCreateBookingPerformanceCapacity(t *testing.T) {
	f := newFixture(t)
	perf := f.newPerformance(t, ptr(3), ptr(int64(1000)), ptr(int64(800)))

	_, err := f.tryBook(perf, f.tickets(f.stalls, f.adult, 4))
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Empty(t, capErr.SeatGroup)
	assert.Equal(t, 3, capErr.Remaining)
	assert.Contains(t, err.Error(), "in this performance")
}

func TestCancelledBookingsReleaseCapacity(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.tickets(f.circle, f.adult, 4))

	_, err := f.tryBook(f.performance, f.tickets(f.circle, f.adult, 1))
	require.ErrorIs(t, err, ErrCapacity)

	cancelled, err := f.svc.Booking.CancelBooking(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	f.book(t, f.tickets(f.circle, f.adult, 4))
}

func TestCreateBookingRejectsUnpricedSeatGroup(t *testing.T) {
	f := newFixture(t)
	perf := f.newPerformance(t, nil, ptr(int64(1000)), nil)

	_, err := f.tryBook(perf, f.tickets(f.circle, f.adult, 1))
	assert.ErrorIs(t, err, pricing.ErrPriceNotConfigured)

	_, err = f.svc.Production.SetPerformanceSeatGroup(f.ctx, perf, f.circle, &request.SetSeatGroupRequest{Price: ptr(int64(700))})
	require.NoError(t, err)

	b, err := f.tryBook(perf, f.tickets(f.circle, f.adult, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(700), b.Price.Total)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.tryBook(f.performance)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.tryBook(f.performance, f.tickets(uuid.NewString(), f.adult, 1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.tryBook(f.performance, f.tickets(f.stalls, uuid.NewString(), 1))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.tryBook(uuid.NewString(), f.tickets(f.stalls, f.adult, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingWaitsForLock(t *testing.T) {
	f := newFixture(t, func(c *utils.Config) { c.Redis.LockTTL = 100 * time.Millisecond })
	require.NoError(t, f.redis.Set("lock:performance:"+f.performance, "someone-else"))

	_, err := f.tryBook(f.performance, f.tickets(f.stalls, f.adult, 1))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, f.store.bookings)
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	f := newFixture(t, func(c *utils.Config) { c.Redis.LockTTL = 5 * time.Second })

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.tryBook(f.performance, f.tickets(f.circle, f.adult, 1))
		}(i)
	}
	wg.Wait()

	ok, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCapacity):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 4, ok)
	assert.Equal(t, 2, full)
}

func TestPayBooking(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.tickets(f.stalls, f.student, 2), f.tickets(f.stalls, f.adult, 2))

	_, err := f.svc.Booking.PayBooking(f.ctx, b.ID, &request.PayBookingRequest{Provider: "cash", Amount: 4000})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	paid, err := f.svc.Booking.PayBooking(f.ctx, b.ID, &request.PayBookingRequest{Provider: "card", Amount: 3200, TransactionID: ptr("txn_1")})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPaid, paid.Booking.Status)
	require.NotNil(t, paid.Booking.TotalPrice)
	assert.Equal(t, int64(3200), *paid.Booking.TotalPrice)
	assert.Equal(t, "booking", paid.Payment.PayableType)
	assert.Equal(t, b.Reference, paid.Payment.PayableID)
	assert.Equal(t, entity.PaymentStatusCompleted, paid.Payment.Status)

	payments, err := f.svc.Booking.GetBookingPayments(f.ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(3200), payments[0].Value)

	_, err = f.svc.Booking.PayBooking(f.ctx, b.ID, &request.PayBookingRequest{Provider: "card", Amount: 3200})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.svc.Booking.PayBooking(f.ctx, b.ID, &request.PayBookingRequest{Provider: "cheque", Amount: 3200})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelBookingTwice(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.tickets(f.stalls, f.adult, 1))

	_, err := f.svc.Booking.CancelBooking(f.ctx, b.ID)
	require.NoError(t, err)
	_, err = f.svc.Booking.CancelBooking(f.ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestQuoteBooking(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.tickets(f.stalls, f.student, 2), f.tickets(f.stalls, f.adult, 2))

	full, err := f.svc.Booking.QuoteBooking(f.ctx, b.ID, &request.QuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), full.Total)

	single, err := f.svc.Booking.QuoteBooking(f.ctx, b.ID, &request.QuoteRequest{DiscountIDs: []string{f.studentOff}})
	require.NoError(t, err)
	assert.Equal(t, int64(3800), single.Total)

	_, err = f.svc.Booking.QuoteBooking(f.ctx, b.ID, &request.QuoteRequest{DiscountIDs: []string{f.family, f.family}})
	assert.ErrorIs(t, err, pricing.ErrInvalidCombination)

	_, err = f.svc.Booking.QuoteBooking(f.ctx, b.ID, &request.QuoteRequest{DiscountIDs: []string{uuid.NewString()}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetBookingErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Booking.GetBookingByID(f.ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Booking.GetBookingByID(f.ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchSpaceTooLarge(t *testing.T) {
	f := newFixture(t, func(c *utils.Config) { c.Pricing.MaxCandidates = 10 })

	// creation still succeeds without a price
	b := f.book(t, f.tickets(f.stalls, f.student, 2), f.tickets(f.stalls, f.adult, 2))
	assert.Nil(t, b.Price)

	_, err := f.svc.Booking.GetBookingByID(f.ctx, b.ID)
	assert.ErrorIs(t, err, pricing.ErrSearchSpaceTooLarge)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Pricing.Searches.WithLabelValues("too_large")))
}

func TestCatalogueIsCached(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Discount.GetPerformanceDiscounts(f.ctx, f.performance)
	require.NoError(t, err)
	loads := f.store.discountLoads
	_, err = f.svc.Discount.GetPerformanceDiscounts(f.ctx, f.performance)
	require.NoError(t, err)
	assert.Equal(t, loads, f.store.discountLoads)
	assert.True(t, f.redis.Exists("test:discounts:"+f.performance))
	assert.Len(t, first, 2)

	require.NoError(t, f.svc.Discount.DeleteDiscount(f.ctx, f.family))
	assert.False(t, f.redis.Exists("test:discounts:"+f.performance))

	after, err := f.svc.Discount.GetPerformanceDiscounts(f.ctx, f.performance)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, f.studentOff, after[0].ID)

	assert.ErrorIs(t, f.svc.Discount.DeleteDiscount(f.ctx, f.family), ErrNotFound)
}

func TestCreateDiscountValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Discount.CreateDiscount(f.ctx, &request.CreateDiscountRequest{
		Name: "Twice",
		Rate: 0.1,
		Requirements: []request.RequirementRequest{
			{ConcessionTypeID: f.adult, Number: 1},
			{ConcessionTypeID: f.adult, Number: 2},
		},
		PerformanceIDs: []string{f.performance},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Discount.CreateDiscount(f.ctx, &request.CreateDiscountRequest{
		Name:           "Unknown performance",
		Rate:           0.1,
		Requirements:   []request.RequirementRequest{{ConcessionTypeID: f.adult, Number: 1}},
		PerformanceIDs: []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPerformanceDetail(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.tickets(f.circle, f.adult, 3))

	perf, err := f.svc.Production.GetPerformanceByID(f.ctx, f.performance)
	require.NoError(t, err)
	assert.Equal(t, 14, perf.Capacity)
	assert.Equal(t, 11, perf.CapacityRemaining)
	assert.Equal(t, 120, perf.DurationMinutes)

	require.Len(t, perf.SeatGroups, 2)
	for _, g := range perf.SeatGroups {
		if g.SeatGroupID != f.circle {
			continue
		}
		assert.Equal(t, "Circle", g.Name)
		assert.Equal(t, 1, g.Remaining)
		prices := map[string]int64{}
		for _, c := range g.ConcessionPrices {
			prices[c.Name] = c.Price
		}
		assert.Equal(t, map[string]int64{"Student": 640, "Adult": 800}, prices)
	}
}

func TestDeleteProductionHidesPerformances(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Production.DeleteProduction(f.ctx, f.production))

	_, err := f.svc.Production.GetProductionByID(f.ctx, f.production)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Production.GetPerformanceByID(f.ctx, f.performance)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.tryBook(f.performance, f.tickets(f.stalls, f.adult, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePerformanceRejectsForeignSeatGroup(t *testing.T) {
	f := newFixture(t)
	other, err := f.svc.Venue.CreateVenue(f.ctx, &request.CreateVenueRequest{Name: "Pegg Studio"})
	require.NoError(t, err)
	foreign, err := f.svc.Venue.CreateSeatGroup(f.ctx, other.ID, &request.CreateSeatGroupRequest{Name: "Floor", Capacity: 50})
	require.NoError(t, err)

	start := time.Now().Add(24 * time.Hour)
	_, err = f.svc.Production.CreatePerformance(f.ctx, f.production, &request.CreatePerformanceRequest{
		VenueID:    f.venue,
		Start:      start,
		End:        start.Add(time.Hour),
		SeatGroups: []request.PerformanceSeatGroupRequest{{SeatGroupID: foreign.ID}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVenueListing(t *testing.T) {
	f := newFixture(t)

	venues, err := f.svc.Venue.GetVenues(f.ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), venues.Pagination.Total)

	venue, err := f.svc.Venue.GetVenueByID(f.ctx, f.venue)
	require.NoError(t, err)
	assert.Len(t, venue.SeatGroups, 2)
}
