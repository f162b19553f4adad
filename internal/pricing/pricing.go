// Package pricing finds the cheapest way to apply a performance's discounts
// to a booking. Every function here is pure: callers pass an immutable
// Snapshot and get back a Quote.
package pricing

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrPriceNotConfigured is returned when a ticket's seat group has no price for the performance.
	ErrPriceNotConfigured = errors.New("price not configured")
	// ErrInvalidCombination is returned when tickets cannot satisfy a combination's requirements.
	ErrInvalidCombination = errors.New("invalid discount combination")
	// ErrSearchSpaceTooLarge is returned when the candidate count exceeds Limits.MaxCandidates.
	ErrSearchSpaceTooLarge = errors.New("discount search space too large")
)

// Requirement asks for Number tickets of one concession type.
type Requirement struct {
	ConcessionTypeID uuid.UUID `json:"concession_type_id"`
	Number           int       `json:"number"`
}

// Discount is a catalogue entry. Rate is the fraction taken off, in [0,1).
type Discount struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Rate         float64       `json:"rate"`
	SeatGroupID  *uuid.UUID    `json:"seat_group_id,omitempty"`
	Requirements []Requirement `json:"requirements"`
}

// IsSingle reports whether the discount applies to exactly one ticket.
func (d Discount) IsSingle() bool {
	return len(d.Requirements) == 1 && d.Requirements[0].Number == 1
}

func (d Discount) scoped() bool {
	return d.SeatGroupID != nil
}

// Ticket is one booked place.
type Ticket struct {
	SeatGroupID      uuid.UUID `json:"seat_group_id"`
	ConcessionTypeID uuid.UUID `json:"concession_type_id"`
}

// MiscCostKind tells how a misc cost is charged.
type MiscCostKind string

const (
	MiscCostValue      MiscCostKind = "value"
	MiscCostPercentage MiscCostKind = "percentage"
)

// MiscCost is a surcharge added after discounting.
type MiscCost struct {
	Name       string       `json:"name"`
	Kind       MiscCostKind `json:"kind"`
	Value      int64        `json:"value,omitempty"`
	Percentage float64      `json:"percentage,omitempty"`
}

// PriceTable maps a seat group to its base unit price for one performance.
// Seat groups without a configured price are absent.
type PriceTable map[uuid.UUID]int64

// Snapshot is the frozen input of a pricing run.
type Snapshot struct {
	Tickets   []Ticket
	Discounts []Discount
	Prices    PriceTable
	MiscCosts []MiscCost
}
