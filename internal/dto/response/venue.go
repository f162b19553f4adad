package response

import (
	"time"

	"box-office/internal/data/entity"
)

type SeatGroupResponse struct {
	ID          string  `json:"id"`
	VenueID     string  `json:"venue_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Capacity    int     `json:"capacity"`
	IsInternal  bool    `json:"is_internal"`
}

type VenueResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Description      *string             `json:"description,omitempty"`
	Address          *string             `json:"address,omitempty"`
	InternalCapacity int                 `json:"internal_capacity"`
	SeatGroups       []SeatGroupResponse `json:"seat_groups,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func SeatGroupToResponse(g *entity.SeatGroup) SeatGroupResponse {
	return SeatGroupResponse{
		ID:          g.ID.String(),
		VenueID:     g.VenueID.String(),
		Name:        g.Name,
		Description: g.Description,
		Capacity:    g.Capacity,
		IsInternal:  g.IsInternal,
	}
}

func VenueToResponse(v *entity.Venue, groups []*entity.SeatGroup) VenueResponse {
	resp := VenueResponse{
		ID:               v.ID.String(),
		Name:             v.Name,
		Description:      v.Description,
		Address:          v.Address,
		InternalCapacity: v.InternalCapacity,
		CreatedAt:        v.CreatedAt,
	}
	for _, g := range groups {
		resp.SeatGroups = append(resp.SeatGroups, SeatGroupToResponse(g))
	}
	return resp
}
