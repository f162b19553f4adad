package entity

import (
	"time"

	"github.com/google/uuid"
)

type Production struct {
	Base
	Name        string  `db:"name"`
	Subtitle    *string `db:"subtitle"`
	Description *string `db:"description"`
	AgeRating   *int    `db:"age_rating"`
}

// Performance is one showing of a production at a venue.
type Performance struct {
	Base
	ProductionID     uuid.UUID  `db:"production_id"`
	VenueID          uuid.UUID  `db:"venue_id"`
	DoorsOpen        *time.Time `db:"doors_open"`
	Start            time.Time  `db:"start_time"`
	End              time.Time  `db:"end_time"`
	ExtraInformation *string    `db:"extra_information"`
	CapacityOverride *int       `db:"capacity"`
}

func (p Performance) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

func (p Performance) IsUpcoming(now time.Time) bool {
	return p.Start.After(now)
}

// PerformanceSeatGroup holds the price and capacity of a seat group for one
// performance. A nil Price means no price has been set yet.
type PerformanceSeatGroup struct {
	BaseNoDelete
	PerformanceID uuid.UUID `db:"performance_id"`
	SeatGroupID   uuid.UUID `db:"seat_group_id"`
	Price         *int64    `db:"price"`
	Capacity      int       `db:"capacity"`
}
