package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"

	"github.com/google/uuid"
)

// store is an in-memory stand-in for postgres behind every repository.
type store struct {
	mu sync.Mutex

	venues        map[uuid.UUID]*entity.Venue
	seatGroups    map[uuid.UUID]*entity.SeatGroup
	productions   map[uuid.UUID]*entity.Production
	performances  map[uuid.UUID]*entity.Performance
	perfGroups    []*entity.PerformanceSeatGroup
	concessions   map[uuid.UUID]*entity.ConcessionType
	discounts     []*entity.Discount
	discountPerfs map[uuid.UUID][]uuid.UUID
	miscCosts     []*entity.MiscCost
	bookings      map[uuid.UUID]*entity.Booking
	payments      []*entity.Payment

	discountLoads int
}

func newStore() *store {
	return &store{
		venues:        make(map[uuid.UUID]*entity.Venue),
		seatGroups:    make(map[uuid.UUID]*entity.SeatGroup),
		productions:   make(map[uuid.UUID]*entity.Production),
		performances:  make(map[uuid.UUID]*entity.Performance),
		concessions:   make(map[uuid.UUID]*entity.ConcessionType),
		discountPerfs: make(map[uuid.UUID][]uuid.UUID),
		bookings:      make(map[uuid.UUID]*entity.Booking),
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Venue:       fakeVenueRepo{s},
		Production:  fakeProductionRepo{s},
		Performance: fakePerformanceRepo{s},
		Concession:  fakeConcessionRepo{s},
		Discount:    fakeDiscountRepo{s},
		MiscCost:    fakeMiscCostRepo{s},
		Booking:     fakeBookingRepo{s},
		Payment:     fakePaymentRepo{s},
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}

type fakeVenueRepo struct{ *store }

func (r fakeVenueRepo) Create(_ context.Context, v *entity.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *v
	r.venues[v.ID] = &c
	return nil
}

func (r fakeVenueRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok || v.IsDeleted() {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r fakeVenueRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Venue
	for _, v := range r.venues {
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r fakeVenueRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.venues)), nil
}

func (r fakeVenueRepo) CreateSeatGroup(_ context.Context, g *entity.SeatGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *g
	r.seatGroups[g.ID] = &c
	return nil
}

func (r fakeVenueRepo) FindSeatGroupByID(_ context.Context, id uuid.UUID) (*entity.SeatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.seatGroups[id]
	if !ok {
		return nil, nil
	}
	c := *g
	return &c, nil
}

func (r fakeVenueRepo) FindSeatGroupsByVenueID(_ context.Context, venueID uuid.UUID) ([]*entity.SeatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SeatGroup
	for _, g := range r.seatGroups {
		if g.VenueID == venueID {
			c := *g
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeProductionRepo struct{ *store }

func (r fakeProductionRepo) Create(_ context.Context, p *entity.Production) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.productions[p.ID] = &c
	return nil
}

func (r fakeProductionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Production, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productions[id]
	if !ok || p.IsDeleted() {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r fakeProductionRepo) live() []*entity.Production {
	var out []*entity.Production
	for _, p := range r.productions {
		if !p.IsDeleted() {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeProductionRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Production, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.live(), limit, offset), nil
}

func (r fakeProductionRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.live())), nil
}

func (r fakeProductionRepo) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productions[id]
	if !ok || !p.SoftDelete(at) {
		return fmt.Errorf("production %s: %w", id, repository.ErrNotFound)
	}
	for _, perf := range r.performances {
		if perf.ProductionID == id {
			perf.SoftDelete(at)
		}
	}
	return nil
}

type fakePerformanceRepo struct{ *store }

func (r fakePerformanceRepo) CreateWithSeatGroups(_ context.Context, p *entity.Performance, groups []*entity.PerformanceSeatGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.performances[p.ID] = &c
	for _, g := range groups {
		gc := *g
		r.perfGroups = append(r.perfGroups, &gc)
	}
	return nil
}

func (r fakePerformanceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.performances[id]
	if !ok || p.IsDeleted() {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r fakePerformanceRepo) FindByProductionID(_ context.Context, productionID uuid.UUID) ([]*entity.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Performance
	for _, p := range r.performances {
		if p.ProductionID == productionID && !p.IsDeleted() {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r fakePerformanceRepo) FindSeatGroups(_ context.Context, performanceID uuid.UUID) ([]*entity.PerformanceSeatGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PerformanceSeatGroup
	for _, g := range r.perfGroups {
		if g.PerformanceID == performanceID {
			c := *g
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r fakePerformanceRepo) UpsertSeatGroup(_ context.Context, g *entity.PerformanceSeatGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.perfGroups {
		if existing.PerformanceID == g.PerformanceID && existing.SeatGroupID == g.SeatGroupID {
			existing.Price = g.Price
			existing.Capacity = g.Capacity
			existing.UpdatedAt = g.UpdatedAt
			g.ID, g.CreatedAt = existing.ID, existing.CreatedAt
			return nil
		}
	}
	c := *g
	r.perfGroups = append(r.perfGroups, &c)
	return nil
}

type fakeConcessionRepo struct{ *store }

func (r fakeConcessionRepo) Create(_ context.Context, c *entity.ConcessionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cc := *c
	r.concessions[c.ID] = &cc
	return nil
}

func (r fakeConcessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ConcessionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.concessions[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r fakeConcessionRepo) FindAll(_ context.Context) ([]*entity.ConcessionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ConcessionType
	for _, c := range r.concessions {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeDiscountRepo struct{ *store }

func cloneDiscount(d *entity.Discount) *entity.Discount {
	c := *d
	c.Requirements = append([]entity.DiscountRequirement(nil), d.Requirements...)
	return &c
}

func (r fakeDiscountRepo) Create(_ context.Context, d *entity.Discount, performanceIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discounts = append(r.discounts, cloneDiscount(d))
	r.discountPerfs[d.ID] = append([]uuid.UUID(nil), performanceIDs...)
	return nil
}

func (r fakeDiscountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.discounts {
		if d.ID == id && !d.IsDeleted() {
			return cloneDiscount(d), nil
		}
	}
	return nil, nil
}

func (r fakeDiscountRepo) FindByPerformanceID(_ context.Context, performanceID uuid.UUID) ([]*entity.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discountLoads++
	var out []*entity.Discount
	for _, d := range r.discounts {
		if d.IsDeleted() {
			continue
		}
		for _, id := range r.discountPerfs[d.ID] {
			if id == performanceID {
				out = append(out, cloneDiscount(d))
			}
		}
	}
	return out, nil
}

func (r fakeDiscountRepo) FindPerformanceIDs(_ context.Context, discountID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.discountPerfs[discountID]...), nil
}

func (r fakeDiscountRepo) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.discounts {
		if d.ID == id && d.SoftDelete(at) {
			return nil
		}
	}
	return fmt.Errorf("discount %s: %w", id, repository.ErrNotFound)
}

type fakeMiscCostRepo struct{ *store }

func (r fakeMiscCostRepo) Create(_ context.Context, m *entity.MiscCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *m
	r.miscCosts = append(r.miscCosts, &c)
	return nil
}

func (r fakeMiscCostRepo) FindAll(_ context.Context) ([]*entity.MiscCost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.MiscCost
	for _, m := range r.miscCosts {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

type fakeBookingRepo struct{ *store }

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.Tickets = append([]entity.Ticket(nil), b.Tickets...)
	return &c
}

func (r fakeBookingRepo) CreateWithTickets(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (r fakeBookingRepo) forPerformance(performanceID uuid.UUID) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.PerformanceID == performanceID {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeBookingRepo) FindByPerformanceID(_ context.Context, performanceID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.forPerformance(performanceID), limit, offset), nil
}

func (r fakeBookingRepo) CountByPerformanceID(_ context.Context, performanceID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.forPerformance(performanceID))), nil
}

func (r fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return fmt.Errorf("booking %s: %w", b.ID, repository.ErrNotFound)
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r fakeBookingRepo) UpdateWithPayment(ctx context.Context, b *entity.Booking, p *entity.Payment) error {
	if err := r.Update(ctx, b); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.payments = append(r.payments, &c)
	return nil
}

func (r fakeBookingRepo) CountTicketsBySeatGroup(_ context.Context, performanceID uuid.UUID) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, b := range r.bookings {
		if b.PerformanceID != performanceID || b.Status == entity.BookingStatusCancelled {
			continue
		}
		for _, t := range b.Tickets {
			counts[t.SeatGroupID]++
		}
	}
	return counts, nil
}

type fakePaymentRepo struct{ *store }

func (r fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.payments = append(r.payments, &c)
	return nil
}

func (r fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r fakePaymentRepo) FindByPayable(_ context.Context, payable entity.Payable) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.PayableType == payable.PayableType() && p.PayableID == payable.PaymentReferenceID() {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}
