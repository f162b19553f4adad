package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketGroup batches tickets sharing a seat group and concession type.
type TicketGroup struct {
	SeatGroupID      uuid.UUID `json:"seat_group_id"`
	ConcessionTypeID uuid.UUID `json:"concession_type_id"`
	Number           int       `json:"number"`
	UnitPrice        int64     `json:"unit_price"`
	ConcessionPrice  int64     `json:"concession_price"`
	TotalPrice       int64     `json:"total_price"`
}

// Application is one discount instance applied to the tickets it consumed.
type Application struct {
	DiscountID uuid.UUID `json:"discount_id"`
	Name       string    `json:"name"`
	Rate       float64   `json:"rate"`
	Tickets    int       `json:"tickets"`
	Subtotal   int64     `json:"subtotal"`
	Price      int64     `json:"price"`
	Value      int64     `json:"value"`
}

// MiscCharge is a misc cost resolved against a subtotal.
type MiscCharge struct {
	Name  string       `json:"name"`
	Kind  MiscCostKind `json:"kind"`
	Value int64        `json:"value"`
}

// Quote is the priced outcome of one combination.
type Quote struct {
	Combination    Combination   `json:"-"`
	Groups         []TicketGroup `json:"groups"`
	Applications   []Application `json:"applications"`
	TicketsPrice   int64         `json:"tickets_price"`
	DiscountsValue int64         `json:"discounts_value"`
	Subtotal       int64         `json:"subtotal"`
	MiscCosts      []MiscCharge  `json:"misc_costs"`
	MiscCostsValue int64         `json:"misc_costs_value"`
	Total          int64         `json:"total"`
}

// Evaluate prices the snapshot's tickets under combo.
//
// combo must already be valid for the tickets (see Combination.IsValid).
// Tickets are assigned to the discount instances so that the total amount
// taken off is as large as possible; each instance charges
// ceil(subtotal × (1 − rate)) for the tickets it holds and every other
// ticket is charged its base price. Flat misc costs are then added and
// percentage misc costs are charged on the discounted subtotal.
// ErrInvalidCombination is returned if no assignment satisfies every
// instance.
func Evaluate(s Snapshot, combo Combination) (*Quote, error) {
	q := &Quote{Combination: combo}
	if len(s.Tickets) == 0 {
		return q, nil
	}

	prices, err := priceTickets(s)
	if err != nil {
		return nil, err
	}
	q.Groups = groupTickets(s, prices)
	for _, p := range prices {
		q.TicketsPrice += p
	}

	apps, err := assign(s.Tickets, prices, combo.canonical())
	if err != nil {
		return nil, err
	}
	q.Applications = apps
	for _, app := range apps {
		q.DiscountsValue += app.Value
	}

	q.Subtotal = q.TicketsPrice - q.DiscountsValue
	for _, mc := range s.MiscCosts {
		charge := MiscCharge{Name: mc.Name, Kind: mc.Kind}
		switch mc.Kind {
		case MiscCostPercentage:
			charge.Value = ceilMul(q.Subtotal, decimal.NewFromFloat(mc.Percentage))
		default:
			charge.Value = mc.Value
		}
		q.MiscCosts = append(q.MiscCosts, charge)
		q.MiscCostsValue += charge.Value
	}
	q.Total = q.Subtotal + q.MiscCostsValue
	return q, nil
}

func priceTickets(s Snapshot) ([]int64, error) {
	prices := make([]int64, len(s.Tickets))
	for i, t := range s.Tickets {
		price, ok := s.Prices[t.SeatGroupID]
		if !ok {
			return nil, fmt.Errorf("seat group %s: %w", t.SeatGroupID, ErrPriceNotConfigured)
		}
		prices[i] = price
	}
	return prices, nil
}

// groupTickets batches tickets in order of first appearance.
func groupTickets(s Snapshot, prices []int64) []TicketGroup {
	var groups []TicketGroup
	index := make(map[scopedKey]int)
	for i, t := range s.Tickets {
		key := scopedKey{t.SeatGroupID, t.ConcessionTypeID}
		pos, ok := index[key]
		if !ok {
			unit := prices[i]
			groups = append(groups, TicketGroup{
				SeatGroupID:      t.SeatGroupID,
				ConcessionTypeID: t.ConcessionTypeID,
				UnitPrice:        unit,
				ConcessionPrice:  ConcessionPrice(s.Discounts, t.SeatGroupID, t.ConcessionTypeID, unit),
			})
			pos = len(groups) - 1
			index[key] = pos
		}
		groups[pos].Number++
		groups[pos].TotalPrice += prices[i]
	}
	return groups
}

// ConcessionPrice is the unit price of a ticket after the first single-ticket
// discount in the catalogue that covers its concession type and seat group.
func ConcessionPrice(discounts []Discount, seatGroup, concession uuid.UUID, price int64) int64 {
	for _, d := range discounts {
		if !d.IsSingle() || d.Requirements[0].ConcessionTypeID != concession {
			continue
		}
		if d.scoped() && *d.SeatGroupID != seatGroup {
			continue
		}
		return discountedPrice(price, d.Rate)
	}
	return price
}

func discountedPrice(amount int64, rate float64) int64 {
	return ceilMul(amount, decimal.NewFromInt(1).Sub(decimal.NewFromFloat(rate)))
}

func ceilMul(amount int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Ceil().IntPart()
}
