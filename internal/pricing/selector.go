package pricing

import (
	"errors"
	"fmt"
)

// DefaultMaxCandidates bounds the search when Limits.MaxCandidates is unset.
const DefaultMaxCandidates = 200_000

// Limits caps the brute-force search.
type Limits struct {
	MaxCandidates int
}

// Result is the outcome of a search: the winning quote plus counters.
type Result struct {
	Quote      *Quote
	Candidates int
	Valid      int
	Evaluated  int
}

// Selector finds the minimum-price discount combination for a booking.
//
// The search is exhaustive: every combination of up to len(tickets)
// discounts is generated, so the cost is exponential in both the ticket
// count and the catalogue size. Bookings and catalogues are small in
// practice; Limits.MaxCandidates turns anything larger into
// ErrSearchSpaceTooLarge instead of an unbounded computation.
type Selector struct {
	limits Limits
}

func NewSelector(limits Limits) *Selector {
	if limits.MaxCandidates <= 0 {
		limits.MaxCandidates = DefaultMaxCandidates
	}
	return &Selector{limits: limits}
}

// Best returns the cheapest valid combination. The empty combination is
// always a candidate and is tried first; ties keep the earliest candidate in
// generation order.
func (s *Selector) Best(snap Snapshot) (*Result, error) {
	best, err := Evaluate(snap, nil)
	if err != nil {
		return nil, err
	}
	res := &Result{Quote: best, Evaluated: 1}
	if len(snap.Tickets) == 0 || len(snap.Discounts) == 0 {
		return res, nil
	}

	count, ok := CountCombinations(len(snap.Discounts), len(snap.Tickets), s.limits.MaxCandidates)
	if !ok {
		return nil, fmt.Errorf("%d discounts over %d tickets exceeds %d candidates: %w",
			len(snap.Discounts), len(snap.Tickets), s.limits.MaxCandidates, ErrSearchSpaceTooLarge)
	}
	res.Candidates = count

	seen := make(map[string]struct{})
	for _, combo := range Combinations(snap.Discounts, len(snap.Tickets)) {
		if !combo.IsValid(snap.Tickets) {
			continue
		}
		res.Valid++

		// price depends on the multiset only
		key := combo.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		q, err := Evaluate(snap, combo)
		if errors.Is(err, ErrInvalidCombination) {
			// aggregate supply sufficed but scoped tickets could not be assigned
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Evaluated++
		if q.Total < res.Quote.Total {
			res.Quote = q
		}
	}
	return res, nil
}
