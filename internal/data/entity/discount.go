package entity

import "github.com/google/uuid"

type ConcessionType struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

// Discount takes Rate off the tickets that satisfy its requirements.
type Discount struct {
	Base
	Name         string                `db:"name"`
	Rate         float64               `db:"discount"`
	SeatGroupID  *uuid.UUID            `db:"seat_group_id"`
	Requirements []DiscountRequirement `db:"-"`
}

// DiscountRequirement asks for Number tickets of a concession type.
type DiscountRequirement struct {
	BaseSimple
	DiscountID       uuid.UUID `db:"discount_id"`
	ConcessionTypeID uuid.UUID `db:"concession_type_id"`
	Number           int       `db:"number"`
}

type MiscCostKind string

const (
	MiscCostKindValue      MiscCostKind = "value"
	MiscCostKindPercentage MiscCostKind = "percentage"
)

// MiscCost is a booking surcharge: a flat Value or a Percentage of the subtotal.
type MiscCost struct {
	Base
	Name        string   `db:"name"`
	Description *string  `db:"description"`
	Value       *int64   `db:"value"`
	Percentage  *float64 `db:"percentage"`
}

func (m MiscCost) Kind() MiscCostKind {
	if m.Percentage != nil {
		return MiscCostKindPercentage
	}
	return MiscCostKindValue
}
