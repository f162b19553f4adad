package pricing

import "github.com/google/uuid"

type scopedKey struct {
	seatGroup  uuid.UUID
	concession uuid.UUID
}

// IsValid reports whether tickets hold enough of each concession type to
// satisfy every requirement of every discount in c, counting each ticket at
// most once. It checks aggregate supply only and does not assign tickets.
func (c Combination) IsValid(tickets []Ticket) bool {
	if len(c) == 0 {
		return true
	}

	demand := make(map[uuid.UUID]int)
	scopedDemand := make(map[scopedKey]int)
	total := 0
	for _, d := range c {
		if len(d.Requirements) == 0 {
			return false
		}
		for _, req := range d.Requirements {
			if req.Number <= 0 {
				return false
			}
			demand[req.ConcessionTypeID] += req.Number
			total += req.Number
			if d.scoped() {
				scopedDemand[scopedKey{*d.SeatGroupID, req.ConcessionTypeID}] += req.Number
			}
		}
	}
	if total > len(tickets) {
		return false
	}

	supply := make(map[uuid.UUID]int)
	scopedSupply := make(map[scopedKey]int)
	for _, t := range tickets {
		supply[t.ConcessionTypeID]++
		scopedSupply[scopedKey{t.SeatGroupID, t.ConcessionTypeID}]++
	}

	for concession, n := range demand {
		if supply[concession] < n {
			return false
		}
	}
	for key, n := range scopedDemand {
		if scopedSupply[key] < n {
			return false
		}
	}
	return true
}

// ValidCombinations returns the combinations of discounts, bounded by the
// number of tickets, that tickets can satisfy. Generation order is kept.
func ValidCombinations(discounts []Discount, tickets []Ticket) []Combination {
	var valid []Combination
	for _, combo := range Combinations(discounts, len(tickets)) {
		if combo.IsValid(tickets) {
			valid = append(valid, combo)
		}
	}
	return valid
}
