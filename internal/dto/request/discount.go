package request

type CreateConcessionTypeRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

type CreateDiscountRequest struct {
	Name           string               `json:"name" validate:"required,max=255"`
	Rate           float64              `json:"discount" validate:"gte=0,lt=1"`
	SeatGroupID    *string              `json:"seat_group_id,omitempty" validate:"omitempty,uuid"`
	Requirements   []RequirementRequest `json:"requirements" validate:"required,min=1,dive"`
	PerformanceIDs []string             `json:"performance_ids" validate:"required,min=1,dive,uuid"`
}

type RequirementRequest struct {
	ConcessionTypeID string `json:"concession_type_id" validate:"required,uuid"`
	Number           int    `json:"number" validate:"required,gt=0"`
}

// CreateMiscCostRequest takes exactly one of Value and Percentage.
type CreateMiscCostRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description *string  `json:"description,omitempty"`
	Value       *int64   `json:"value,omitempty" validate:"required_without=Percentage,excluded_with=Percentage,omitempty,gte=0"`
	Percentage  *float64 `json:"percentage,omitempty" validate:"required_without=Value,omitempty,gt=0,lte=1"`
}
