package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusPaid       BookingStatus = "paid"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type Booking struct {
	Base
	Reference     uuid.UUID     `db:"booking_reference"`
	PerformanceID uuid.UUID     `db:"performance_id"`
	Status        BookingStatus `db:"status"`
	TotalPrice    *int64        `db:"total_price"`
	Tickets       []Ticket      `db:"-"`
}

// PaymentReferenceID implements Payable.
func (b *Booking) PaymentReferenceID() uuid.UUID {
	return b.Reference
}

func (b *Booking) PayableType() string {
	return "booking"
}

// CanPay reports whether the booking still awaits payment.
func (b *Booking) CanPay() bool {
	return b.Status == BookingStatusInProgress
}

// MarkPaid freezes the charged total and moves the booking to paid.
func (b *Booking) MarkPaid(total int64, now time.Time) bool {
	if !b.CanPay() {
		return false
	}
	b.Status = BookingStatusPaid
	b.TotalPrice = &total
	b.Touch(now)
	return true
}

// Cancel is allowed from in_progress and paid.
func (b *Booking) Cancel(now time.Time) bool {
	if b.Status != BookingStatusInProgress && b.Status != BookingStatusPaid {
		return false
	}
	b.Status = BookingStatusCancelled
	b.Touch(now)
	return true
}

// Ticket is one place in a booking. ConcessionTypeID drives discount matching.
type Ticket struct {
	BaseSimple
	BookingID        uuid.UUID `db:"booking_id"`
	SeatGroupID      uuid.UUID `db:"seat_group_id"`
	ConcessionTypeID uuid.UUID `db:"concession_type_id"`
}
