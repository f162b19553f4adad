package response

import (
	"time"

	"box-office/internal/data/entity"
)

type ProductionResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Subtitle     *string               `json:"subtitle,omitempty"`
	Description  *string               `json:"description,omitempty"`
	AgeRating    *int                  `json:"age_rating,omitempty"`
	Performances []PerformanceResponse `json:"performances,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type PerformanceResponse struct {
	ID                string                         `json:"id"`
	ProductionID      string                         `json:"production_id"`
	VenueID           string                         `json:"venue_id"`
	DoorsOpen         *time.Time                     `json:"doors_open,omitempty"`
	Start             time.Time                      `json:"start"`
	End               time.Time                      `json:"end"`
	DurationMinutes   int                            `json:"duration_minutes"`
	ExtraInformation  *string                        `json:"extra_information,omitempty"`
	Capacity          int                            `json:"capacity"`
	CapacityRemaining int                            `json:"capacity_remaining"`
	SeatGroups        []PerformanceSeatGroupResponse `json:"seat_groups,omitempty"`
}

// PerformanceSeatGroupResponse shows a seat group's price at a performance
// together with the display price for each concession on offer.
type PerformanceSeatGroupResponse struct {
	SeatGroupID      string                    `json:"seat_group_id"`
	Name             string                    `json:"name"`
	Price            *int64                    `json:"price"`
	Capacity         int                       `json:"capacity"`
	Remaining        int                       `json:"capacity_remaining"`
	ConcessionPrices []ConcessionPriceResponse `json:"concession_prices,omitempty"`
}

type ConcessionPriceResponse struct {
	ConcessionTypeID string `json:"concession_type_id"`
	Name             string `json:"name"`
	Price            int64  `json:"price"`
}

func ProductionToResponse(p *entity.Production) ProductionResponse {
	return ProductionResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		AgeRating:   p.AgeRating,
		CreatedAt:   p.CreatedAt,
	}
}

// PerformanceToResponse fills the fields held on the performance itself.
// Capacity figures and seat groups are added by the caller.
func PerformanceToResponse(p *entity.Performance) PerformanceResponse {
	return PerformanceResponse{
		ID:               p.ID.String(),
		ProductionID:     p.ProductionID.String(),
		VenueID:          p.VenueID.String(),
		DoorsOpen:        p.DoorsOpen,
		Start:            p.Start,
		End:              p.End,
		DurationMinutes:  int(p.Duration().Minutes()),
		ExtraInformation: p.ExtraInformation,
	}
}
