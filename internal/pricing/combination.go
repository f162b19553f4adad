package pricing

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Combination is an ordered tuple of discounts applied together. Order does
// not affect the price.
type Combination []Discount

// IDs returns the discount ids in tuple order.
func (c Combination) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c))
	for i, d := range c {
		ids[i] = d.ID
	}
	return ids
}

// Key identifies the multiset of discounts in c.
func (c Combination) Key() string {
	ids := make([]string, len(c))
	for i, d := range c {
		ids[i] = d.ID.String()
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// canonical returns a reordered copy: seat-group scoped discounts first, then by id.
func (c Combination) canonical() Combination {
	out := make(Combination, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].scoped() != out[j].scoped() {
			return out[i].scoped()
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// CountCombinations returns k + k² + … + k^length without generating anything.
// The second result is false when the count would exceed limit.
func CountCombinations(k, length, limit int) (int, bool) {
	if k <= 0 || length <= 0 {
		return 0, true
	}
	total, power := 0, 1
	for i := 1; i <= length; i++ {
		if power > limit/k {
			return 0, false
		}
		power *= k
		total += power
		if total > limit {
			return 0, false
		}
	}
	return total, true
}

// Combinations returns every non-empty sequence of discounts, with repetition,
// of length 1 up to length. Shorter tuples come first and tuples of equal
// length are in lexicographic order of their positions in discounts, so
// (A,B) and (B,A) are both produced. The result has k + k² + … + k^length
// entries, which grows exponentially.
func Combinations(discounts []Discount, length int) []Combination {
	if length <= 0 || len(discounts) == 0 {
		return nil
	}

	var out []Combination
	prev := []Combination{{}}
	for n := 1; n <= length; n++ {
		next := make([]Combination, 0, len(prev)*len(discounts))
		for _, prefix := range prev {
			for _, d := range discounts {
				combo := make(Combination, len(prefix)+1)
				copy(combo, prefix)
				combo[len(prefix)] = d
				next = append(next, combo)
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}
