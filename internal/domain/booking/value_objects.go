package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange       = errors.New("start time must be before end time")
	ErrSubMinutePrecision = errors.New("times must fall on whole minutes")
	ErrCrossesMidnight    = errors.New("range must stay within one calendar day")
)

// TimeRange is a half-open [start, end) interval in UTC. Touching endpoints
// do not overlap, so back-to-back bookings are fine.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	if start.Truncate(time.Minute) != start || end.Truncate(time.Minute) != end {
		return TimeRange{}, ErrSubMinutePrecision
	}
	if !sameDay(start, end.Add(-time.Minute)) {
		return TimeRange{}, ErrCrossesMidnight
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time        { return r.start }
func (r TimeRange) End() time.Time          { return r.end }
func (r TimeRange) Duration() time.Duration { return r.end.Sub(r.start) }

// Day is the UTC midnight of the range's calendar day.
func (r TimeRange) Day() time.Time {
	return time.Date(r.start.Year(), r.start.Month(), r.start.Day(), 0, 0, 0, 0, time.UTC)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CostCredits prices a range at a per-hour rate, rounding partial hours up so
// a 90-minute slot at 10 credits/hour costs 15.
func CostCredits(creditPerHour int, r TimeRange) int {
	minutes := int(r.Duration() / time.Minute)
	return (minutes*creditPerHour + 59) / 60
}
