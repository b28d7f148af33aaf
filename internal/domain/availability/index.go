package availability

import (
	"sort"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"

	"github.com/google/uuid"
)

type OccupancyKind string

const (
	OccupancyBooking     OccupancyKind = "booking"
	OccupancyMaintenance OccupancyKind = "maintenance"
)

// Occupancy is anything that blocks a slot: an occupying booking or a
// maintenance block. Both are treated identically for conflict purposes.
type Occupancy struct {
	Ref   uuid.UUID
	Kind  OccupancyKind
	Range booking.TimeRange
}

// Conflicts returns the occupancies overlapping the requested range, in start
// order. An empty result is the common answer, not an error.
func Conflicts(requested booking.TimeRange, occupying []Occupancy) []Occupancy {
	var hits []Occupancy
	for _, occ := range occupying {
		if requested.Overlaps(occ.Range) {
			hits = append(hits, occ)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Range.Start().Before(hits[j].Range.Start())
	})
	return hits
}

// FreeSlot is an open interval within operating hours.
type FreeSlot struct {
	Start time.Time
	End   time.Time
}

// FreeSlots lists the ordered, non-overlapping open intervals of a day within
// the facility's operating hours, given everything that occupies the day.
// Occupancies may overlap each other (a maintenance block laid over an
// existing booking); they are merged before the gaps are computed.
func FreeSlots(hours facility.OperatingHours, day time.Time, occupying []Occupancy) []FreeSlot {
	windowStart, windowEnd := hours.WindowOn(day)

	busy := make([]FreeSlot, 0, len(occupying))
	for _, occ := range occupying {
		s, e := occ.Range.Start(), occ.Range.End()
		if !e.After(windowStart) || !s.Before(windowEnd) {
			continue
		}
		if s.Before(windowStart) {
			s = windowStart
		}
		if e.After(windowEnd) {
			e = windowEnd
		}
		busy = append(busy, FreeSlot{Start: s, End: e})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	merged := busy[:0]
	for _, b := range busy {
		if n := len(merged); n > 0 && !b.Start.After(merged[n-1].End) {
			if b.End.After(merged[n-1].End) {
				merged[n-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}

	var free []FreeSlot
	cursor := windowStart
	for _, b := range merged {
		if b.Start.After(cursor) {
			free = append(free, FreeSlot{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if cursor.Before(windowEnd) {
		free = append(free, FreeSlot{Start: cursor, End: windowEnd})
	}
	return free
}
