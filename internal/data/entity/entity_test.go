package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSoftDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)
	p := Production{Base: NewBase(now), Name: "Twelfth Night"}

	require.False(t, p.IsDeleted())
	require.True(t, p.SoftDelete(now.Add(time.Hour)))
	require.True(t, p.IsDeleted())
	require.Equal(t, now.Add(time.Hour), p.UpdatedAt)
	require.False(t, p.SoftDelete(now.Add(2*time.Hour)))
	require.Equal(t, now.Add(time.Hour), *p.DeletedAt)
}

func TestBookingLifecycle(t *testing.T) {
	now := time.Now()
	b := &Booking{Base: NewBase(now), Status: BookingStatusInProgress}

	require.True(t, b.MarkPaid(3200, now))
	require.Equal(t, BookingStatusPaid, b.Status)
	require.Equal(t, int64(3200), *b.TotalPrice)
	require.False(t, b.MarkPaid(100, now))

	require.True(t, b.Cancel(now))
	require.Equal(t, BookingStatusCancelled, b.Status)
	require.False(t, b.Cancel(now))
}

func TestBookingIsPayable(t *testing.T) {
	b := &Booking{Base: NewBase(time.Now())}
	var p Payable = b
	require.Equal(t, b.Reference, p.PaymentReferenceID())
	require.Equal(t, "booking", p.PayableType())
}

func TestMiscCostKind(t *testing.T) {
	pct := 0.05
	value := int64(100)
	require.Equal(t, MiscCostKindPercentage, MiscCost{Percentage: &pct}.Kind())
	require.Equal(t, MiscCostKindValue, MiscCost{Value: &value}.Kind())
}
