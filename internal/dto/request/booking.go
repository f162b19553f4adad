package request

type CreateBookingRequest struct {
	PerformanceID string          `json:"performance_id" validate:"required,uuid"`
	Tickets       []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketRequest struct {
	SeatGroupID      string `json:"seat_group_id" validate:"required,uuid"`
	ConcessionTypeID string `json:"concession_type_id" validate:"required,uuid"`
}

// QuoteRequest prices a booking under an explicit list of discounts.
// Ids may repeat; an empty list quotes the full price.
type QuoteRequest struct {
	DiscountIDs []string `json:"discount_ids" validate:"dive,uuid"`
}

type PayBookingRequest struct {
	Provider      string  `json:"provider" validate:"required,oneof=cash card"`
	Amount        int64   `json:"amount" validate:"gte=0"`
	TransactionID *string `json:"transaction_id,omitempty" validate:"omitempty,max=255"`
}
