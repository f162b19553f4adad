package entity

import "github.com/google/uuid"

type Venue struct {
	Base
	Name             string  `db:"name"`
	Description      *string `db:"description"`
	Address          *string `db:"address"`
	InternalCapacity int     `db:"internal_capacity"`
}

// SeatGroup is a priced area of a venue, e.g. stalls or circle.
type SeatGroup struct {
	BaseNoDelete
	VenueID     uuid.UUID `db:"venue_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Capacity    int       `db:"capacity"`
	IsInternal  bool      `db:"is_internal"`
}
