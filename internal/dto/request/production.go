package request

import "time"

type CreateProductionRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Subtitle    *string `json:"subtitle,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	AgeRating   *int    `json:"age_rating,omitempty" validate:"omitempty,gte=0,lte=21"`
}

type CreatePerformanceRequest struct {
	VenueID          string                        `json:"venue_id" validate:"required,uuid"`
	DoorsOpen        *time.Time                    `json:"doors_open,omitempty"`
	Start            time.Time                     `json:"start" validate:"required"`
	End              time.Time                     `json:"end" validate:"required,gtfield=Start"`
	ExtraInformation *string                       `json:"extra_information,omitempty"`
	Capacity         *int                          `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	SeatGroups       []PerformanceSeatGroupRequest `json:"seat_groups" validate:"dive"`
}

// PerformanceSeatGroupRequest offers a venue seat group at a performance.
// Capacity defaults to the seat group's own capacity.
type PerformanceSeatGroupRequest struct {
	SeatGroupID string `json:"seat_group_id" validate:"required,uuid"`
	Price       *int64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Capacity    *int   `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

type SetSeatGroupRequest struct {
	Price    *int64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Capacity *int   `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}
