package request

import (
	"testing"
	"time"

	"box-office/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequest(t *testing.T) {
	assert.Equal(t, 0, PaginatedRequest{Page: 0, PerPage: 10}.Offset())
	assert.Equal(t, 20, PaginatedRequest{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, 10, PaginatedRequest{}.Limit())
	assert.Equal(t, 100, PaginatedRequest{Page: 2, PerPage: 500}.Limit())
	assert.Equal(t, 100, PaginatedRequest{Page: 2, PerPage: 500}.Offset())
}

func TestMiscCostRequestNeedsOneAmount(t *testing.T) {
	value := int64(100)
	pct := 0.05

	assert.Empty(t, utils.ValidateStruct(CreateMiscCostRequest{Name: "Booking fee", Value: &value}))
	assert.Empty(t, utils.ValidateStruct(CreateMiscCostRequest{Name: "Theatre improvement levy", Percentage: &pct}))
	assert.NotEmpty(t, utils.ValidateStruct(CreateMiscCostRequest{Name: "Nothing"}))
	assert.NotEmpty(t, utils.ValidateStruct(CreateMiscCostRequest{Name: "Both", Value: &value, Percentage: &pct}))
}

func TestDiscountRequestRate(t *testing.T) {
	req := CreateDiscountRequest{
		Name:           "Student",
		Rate:           1,
		Requirements:   []RequirementRequest{{ConcessionTypeID: "0b5c7b0e-6a5b-4a53-8e0e-7d7c4d1c2f10", Number: 1}},
		PerformanceIDs: []string{"6f1f3f63-1a0f-4b8e-9a56-2f6f2a3f4b10"},
	}
	errs := utils.ValidateStruct(req)
	assert.Contains(t, errs, "CreateDiscountRequest.Rate")

	req.Rate = 0.2
	assert.Empty(t, utils.ValidateStruct(req))

	req.Requirements[0].Number = 0
	assert.Contains(t, utils.ValidateStruct(req), "CreateDiscountRequest.Requirements[0].Number")
}

func TestPerformanceRequestEndAfterStart(t *testing.T) {
	start := time.Date(2026, 11, 20, 19, 30, 0, 0, time.UTC)
	req := CreatePerformanceRequest{
		VenueID: "6f1f3f63-1a0f-4b8e-9a56-2f6f2a3f4b10",
		Start:   start,
		End:     start.Add(-time.Hour),
	}
	assert.Contains(t, utils.ValidateStruct(req), "CreatePerformanceRequest.End")

	req.End = start.Add(2 * time.Hour)
	assert.Empty(t, utils.ValidateStruct(req))
}
