package response

import (
	"encoding/json"
	"testing"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2}, 2, 10, 21)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	empty := NewPaginatedResponse([]int{}, 1, 0, 5)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}

func TestPriceResponseFlattensQuote(t *testing.T) {
	student := pricing.Discount{ID: uuid.New(), Name: "Student", Rate: 0.2}
	q := &pricing.Quote{Combination: pricing.Combination{student}, Subtotal: 1600, Total: 1600}

	data, err := json.Marshal(QuoteToResponse(q))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(1600), got["total"])
	assert.Equal(t, []any{student.ID.String()}, got["discount_ids"])
	assert.NotContains(t, got, "Combination")
}

func TestEmptyCombinationHasEmptyIDs(t *testing.T) {
	data, err := json.Marshal(QuoteToResponse(&pricing.Quote{}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"discount_ids":[]`)
	assert.Nil(t, QuoteToResponse(nil))
}

func TestBookingToResponse(t *testing.T) {
	now := time.Now()
	b := &entity.Booking{
		Base:          entity.NewBase(now),
		Reference:     uuid.New(),
		PerformanceID: uuid.New(),
		Status:        entity.BookingStatusInProgress,
		Tickets:       []entity.Ticket{{BaseSimple: entity.NewBaseSimple(now), SeatGroupID: uuid.New()}},
	}

	resp := BookingToResponse(b)
	assert.Equal(t, b.Reference.String(), resp.Reference)
	assert.Len(t, resp.Tickets, 1)
	assert.Nil(t, resp.TotalPrice)
}

func TestDiscountToResponseScope(t *testing.T) {
	seatGroup := uuid.New()
	resp := DiscountToResponse(pricing.Discount{
		ID:           uuid.New(),
		Rate:         0.1,
		SeatGroupID:  &seatGroup,
		Requirements: []pricing.Requirement{{ConcessionTypeID: uuid.New(), Number: 2}},
	})
	require.NotNil(t, resp.SeatGroupID)
	assert.Equal(t, seatGroup.String(), *resp.SeatGroupID)
	assert.Equal(t, 2, resp.Requirements[0].Number)
}
