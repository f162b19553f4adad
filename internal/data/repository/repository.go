package repository

import (
	"errors"

	"box-office/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that matched no row. Reads return nil, nil.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	Venue       VenueRepository
	Production  ProductionRepository
	Performance PerformanceRepository
	Concession  ConcessionRepository
	Discount    DiscountRepository
	MiscCost    MiscCostRepository
	Booking     BookingRepository
	Payment     PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Venue:       NewVenueRepository(db, log),
		Production:  NewProductionRepository(db, log),
		Performance: NewPerformanceRepository(db, log),
		Concession:  NewConcessionRepository(db, log),
		Discount:    NewDiscountRepository(db, log),
		MiscCost:    NewMiscCostRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
	}
}
