package response

import (
	"box-office/internal/data/entity"
	"box-office/internal/pricing"
)

type ConcessionTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type RequirementResponse struct {
	ConcessionTypeID string `json:"concession_type_id"`
	Number           int    `json:"number"`
}

type DiscountResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Rate         float64               `json:"discount"`
	SeatGroupID  *string               `json:"seat_group_id,omitempty"`
	Requirements []RequirementResponse `json:"requirements"`
}

type MiscCostResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Kind        entity.MiscCostKind `json:"kind"`
	Value       *int64              `json:"value,omitempty"`
	Percentage  *float64            `json:"percentage,omitempty"`
}

func ConcessionTypeToResponse(c *entity.ConcessionType) ConcessionTypeResponse {
	return ConcessionTypeResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
	}
}

func DiscountToResponse(d pricing.Discount) DiscountResponse {
	resp := DiscountResponse{
		ID:           d.ID.String(),
		Name:         d.Name,
		Rate:         d.Rate,
		Requirements: make([]RequirementResponse, 0, len(d.Requirements)),
	}
	if d.SeatGroupID != nil {
		id := d.SeatGroupID.String()
		resp.SeatGroupID = &id
	}
	for _, req := range d.Requirements {
		resp.Requirements = append(resp.Requirements, RequirementResponse{
			ConcessionTypeID: req.ConcessionTypeID.String(),
			Number:           req.Number,
		})
	}
	return resp
}

func MiscCostToResponse(m *entity.MiscCost) MiscCostResponse {
	return MiscCostResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Kind:        m.Kind(),
		Value:       m.Value,
		Percentage:  m.Percentage,
	}
}
