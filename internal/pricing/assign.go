package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ticketClass is a set of interchangeable tickets: same seat group, same
// concession type, same price.
type ticketClass struct {
	seatGroup  uuid.UUID
	concession uuid.UUID
	price      int64
	count      int
}

// step is the best way to satisfy instances i.. from one stock of tickets.
type step struct {
	ok       bool
	value    int64
	take     []int
	subtotal int64
}

// assigner searches every way of handing tickets to discount instances.
// Tickets in one class are interchangeable, so a choice is a count per
// class rather than a subset of tickets, and the best result for a given
// instance index and remaining stock is memoised.
type assigner struct {
	classes []ticketClass
	combo   Combination
	memo    map[string]step
}

func ticketClasses(tickets []Ticket, prices []int64) []ticketClass {
	index := make(map[scopedKey]int)
	var classes []ticketClass
	for i, t := range tickets {
		key := scopedKey{t.SeatGroupID, t.ConcessionTypeID}
		pos, ok := index[key]
		if !ok {
			classes = append(classes, ticketClass{seatGroup: t.SeatGroupID, concession: t.ConcessionTypeID, price: prices[i]})
			pos = len(classes) - 1
			index[key] = pos
		}
		classes[pos].count++
	}
	// independent of ticket order; dearer classes are tried first
	sort.Slice(classes, func(i, j int) bool {
		a, b := classes[i], classes[j]
		if a.price != b.price {
			return a.price > b.price
		}
		if a.seatGroup != b.seatGroup {
			return a.seatGroup.String() < b.seatGroup.String()
		}
		return a.concession.String() < b.concession.String()
	})
	return classes
}

// assign returns one Application per instance of combo, in combo order,
// using the assignment that maximises the total discount value.
func assign(tickets []Ticket, prices []int64, combo Combination) ([]Application, error) {
	if len(combo) == 0 {
		return nil, nil
	}
	for _, d := range combo {
		if len(d.Requirements) == 0 {
			return nil, fmt.Errorf("discount %s has no requirements: %w", d.ID, ErrInvalidCombination)
		}
	}

	a := &assigner{
		classes: ticketClasses(tickets, prices),
		combo:   combo,
		memo:    make(map[string]step),
	}
	stock := make([]int, len(a.classes))
	for i, c := range a.classes {
		stock[i] = c.count
	}

	if !a.search(0, stock).ok {
		return nil, fmt.Errorf("tickets cannot satisfy %d discounts: %w", len(combo), ErrInvalidCombination)
	}

	apps := make([]Application, len(combo))
	for i, d := range combo {
		st := a.memo[stockKey(i, stock)]
		count := 0
		for c, n := range st.take {
			count += n
			stock[c] -= n
		}
		price := discountedPrice(st.subtotal, d.Rate)
		apps[i] = Application{
			DiscountID: d.ID,
			Name:       d.Name,
			Rate:       d.Rate,
			Tickets:    count,
			Subtotal:   st.subtotal,
			Price:      price,
			Value:      st.subtotal - price,
		}
	}
	return apps, nil
}

func stockKey(i int, stock []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(i))
	for _, n := range stock {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (a *assigner) search(i int, stock []int) step {
	if i == len(a.combo) {
		return step{ok: true}
	}
	key := stockKey(i, stock)
	if st, ok := a.memo[key]; ok {
		return st
	}

	d := a.combo[i]
	take := make([]int, len(a.classes))
	var best step

	var choose func(r int)
	choose = func(r int) {
		if r == len(d.Requirements) {
			var subtotal int64
			rest := make([]int, len(stock))
			for c, n := range take {
				subtotal += int64(n) * a.classes[c].price
				rest[c] = stock[c] - n
			}
			next := a.search(i+1, rest)
			if !next.ok {
				return
			}
			value := subtotal - discountedPrice(subtotal, d.Rate) + next.value
			if !best.ok || value > best.value {
				best = step{ok: true, value: value, take: append([]int(nil), take...), subtotal: subtotal}
			}
			return
		}

		req := d.Requirements[r]
		var eligible []int
		for c, class := range a.classes {
			if class.concession != req.ConcessionTypeID {
				continue
			}
			if d.scoped() && class.seatGroup != *d.SeatGroupID {
				continue
			}
			eligible = append(eligible, c)
		}
		a.distribute(eligible, 0, req.Number, stock, take, func() { choose(r + 1) })
	}
	choose(0)

	a.memo[key] = best
	return best
}

// distribute spreads left tickets over the eligible classes in every way the
// remaining stock allows, calling done for each.
func (a *assigner) distribute(eligible []int, k, left int, stock, take []int, done func()) {
	if left == 0 {
		done()
		return
	}
	if k == len(eligible) {
		return
	}
	c := eligible[k]
	for n := min(stock[c]-take[c], left); n >= 0; n-- {
		take[c] += n
		a.distribute(eligible, k+1, left-n, stock, take, done)
		take[c] -= n
	}
}
