package usecase

import (
	"box-office/internal/data/entity"

	"github.com/google/uuid"
)

type seatGroupCapacity struct {
	capacity  int
	remaining int
}

// performanceCapacity combines configured seat-group capacities with the
// tickets already sold. The performance total is the sum of its seat groups,
// lowered to the performance's own capacity when one is set.
type performanceCapacity struct {
	total     int
	remaining int
	groups    map[uuid.UUID]seatGroupCapacity
}

func newPerformanceCapacity(p *entity.Performance, groups []*entity.PerformanceSeatGroup, booked map[uuid.UUID]int) performanceCapacity {
	c := performanceCapacity{groups: make(map[uuid.UUID]seatGroupCapacity, len(groups))}
	sold := 0
	for _, g := range groups {
		n := booked[g.SeatGroupID]
		sold += n
		c.total += g.Capacity
		c.groups[g.SeatGroupID] = seatGroupCapacity{capacity: g.Capacity, remaining: max(g.Capacity-n, 0)}
	}
	if p.CapacityOverride != nil && *p.CapacityOverride < c.total {
		c.total = *p.CapacityOverride
	}
	c.remaining = max(c.total-sold, 0)
	return c
}
