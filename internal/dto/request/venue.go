package request

type CreateVenueRequest struct {
	Name             string  `json:"name" validate:"required,max=255"`
	Description      *string `json:"description,omitempty"`
	Address          *string `json:"address,omitempty"`
	InternalCapacity int     `json:"internal_capacity" validate:"gte=0"`
}

type CreateSeatGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Capacity    int     `json:"capacity" validate:"gte=0"`
	IsInternal  bool    `json:"is_internal"`
}
