package response

import (
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/pricing"

	"github.com/google/uuid"
)

type TicketResponse struct {
	ID               string `json:"id"`
	SeatGroupID      string `json:"seat_group_id"`
	ConcessionTypeID string `json:"concession_type_id"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	Reference     string               `json:"booking_reference"`
	PerformanceID string               `json:"performance_id"`
	Status        entity.BookingStatus `json:"status"`
	TotalPrice    *int64               `json:"total_price,omitempty"`
	Tickets       []TicketResponse     `json:"tickets"`
	Price         *PriceResponse       `json:"price,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// PriceResponse is a priced combination: the discount ids it was built from
// plus the full breakdown.
type PriceResponse struct {
	DiscountIDs []uuid.UUID `json:"discount_ids"`
	*pricing.Quote
}

type PaymentResponse struct {
	ID            string                 `json:"id"`
	PayableID     string                 `json:"payable_id"`
	PayableType   string                 `json:"payable_type"`
	Provider      entity.PaymentProvider `json:"provider"`
	Value         int64                  `json:"value"`
	Status        entity.PaymentStatus   `json:"status"`
	TransactionID *string                `json:"transaction_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type PayBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment PaymentResponse `json:"payment"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference.String(),
		PerformanceID: b.PerformanceID.String(),
		Status:        b.Status,
		TotalPrice:    b.TotalPrice,
		Tickets:       make([]TicketResponse, 0, len(b.Tickets)),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	for _, t := range b.Tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{
			ID:               t.ID.String(),
			SeatGroupID:      t.SeatGroupID.String(),
			ConcessionTypeID: t.ConcessionTypeID.String(),
		})
	}
	return resp
}

func QuoteToResponse(q *pricing.Quote) *PriceResponse {
	if q == nil {
		return nil
	}
	return &PriceResponse{DiscountIDs: q.Combination.IDs(), Quote: q}
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		PayableID:     p.PayableID.String(),
		PayableType:   p.PayableType,
		Provider:      p.Provider,
		Value:         p.Value,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}
