//go:build unit

package booking_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grace = 15 * time.Minute

func testFacility(t *testing.T) *facility.Facility {
	t.Helper()
	hours, err := facility.NewOperatingHours(8*60, 22*60)
	require.NoError(t, err)
	fac, err := facility.NewFacility(uuid.New(), "Court A", facility.KindCourt, 4, 10, hours)
	require.NoError(t, err)
	return fac
}

func mustRange(t *testing.T, start, end time.Time) booking.TimeRange {
	t.Helper()
	r, err := booking.NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewBooking(t *testing.T) {
	fac := testFacility(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("prebooked booking starts confirmed and is priced per hour", func(t *testing.T) {
		r := mustRange(t, now.Add(24*time.Hour), now.Add(26*time.Hour))

		b, err := booking.New(fac, uuid.New(), r, booking.KindPrebooked, now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, 20, b.CreditCost())
		assert.Equal(t, r.Start().Add(grace), b.CheckInDeadline(grace))
	})

	t.Run("ad-hoc booking enters the check-in window immediately", func(t *testing.T) {
		r := mustRange(t, now, now.Add(time.Hour))

		b, err := booking.New(fac, uuid.New(), r, booking.KindAdHoc, now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusAwaitingCheckIn, b.Status())
	})

	t.Run("partial hours round up", func(t *testing.T) {
		r := mustRange(t, now.Add(24*time.Hour), now.Add(24*time.Hour+90*time.Minute))

		b, err := booking.New(fac, uuid.New(), r, booking.KindPrebooked, now)
		require.NoError(t, err)

		assert.Equal(t, 15, b.CreditCost())
	})

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		kind  booking.Kind
		errIs error
	}{
		{
			name:  "outside operating hours",
			start: now.AddDate(0, 0, 1).Add(-3 * time.Hour), // 06:00
			end:   now.AddDate(0, 0, 1).Add(-2 * time.Hour),
			kind:  booking.KindPrebooked,
			errIs: booking.ErrOutsideOperatingHours,
		},
		{
			name:  "prebooked start in the past",
			start: now.Add(-1 * time.Hour),
			end:   now,
			kind:  booking.KindPrebooked,
			errIs: booking.ErrPastStart,
		},
		{
			name:  "ad-hoc for another day",
			start: now.AddDate(0, 0, 2),
			end:   now.AddDate(0, 0, 2).Add(time.Hour),
			kind:  booking.KindAdHoc,
			errIs: booking.ErrAdHocNotToday,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := mustRange(t, c.start, c.end)

			_, err := booking.New(fac, uuid.New(), r, c.kind, now)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}

func TestTimeRange(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := booking.NewTimeRange(day.Add(10*time.Hour), day.Add(10*time.Hour))
		require.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("touching ranges do not overlap", func(t *testing.T) {
		a := mustRange(t, day.Add(10*time.Hour), day.Add(11*time.Hour))
		b := mustRange(t, day.Add(11*time.Hour), day.Add(12*time.Hour))

		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("partial overlap detected both ways", func(t *testing.T) {
		a := mustRange(t, day.Add(10*time.Hour), day.Add(12*time.Hour))
		b := mustRange(t, day.Add(11*time.Hour), day.Add(13*time.Hour))

		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})
}

func TestCheckIn(t *testing.T) {
	fac := testFacility(t)
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	newConfirmed := func(t *testing.T) *booking.Booking {
		t.Helper()
		r := mustRange(t, start, start.Add(time.Hour))
		b, err := booking.New(fac, uuid.New(), r, booking.KindPrebooked, created)
		require.NoError(t, err)
		return b
	}

	t.Run("succeeds one minute before the deadline", func(t *testing.T) {
		b := newConfirmed(t)
		require.NoError(t, b.BeginCheckInWindow(start))

		require.NoError(t, b.CheckIn(start.Add(14*time.Minute), grace))
		assert.Equal(t, booking.StatusCheckedIn, b.Status())
	})

	t.Run("succeeds shortly before start without explicit promotion", func(t *testing.T) {
		b := newConfirmed(t)

		require.NoError(t, b.CheckIn(start.Add(-10*time.Minute), grace))
	})

	t.Run("too early", func(t *testing.T) {
		b := newConfirmed(t)

		err := b.CheckIn(start.Add(-16*time.Minute), grace)
		require.ErrorIs(t, err, booking.ErrCheckInTooEarly)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("expired one minute past the deadline", func(t *testing.T) {
		b := newConfirmed(t)
		require.NoError(t, b.BeginCheckInWindow(start))

		err := b.CheckIn(start.Add(16*time.Minute), grace)
		require.ErrorIs(t, err, booking.ErrCheckInExpired)
	})

	t.Run("rejected after release", func(t *testing.T) {
		b := newConfirmed(t)
		require.NoError(t, b.BeginCheckInWindow(start))
		require.NoError(t, b.ReleaseNoShow(start.Add(grace)))

		err := b.CheckIn(start.Add(10*time.Minute), grace)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	fac := testFacility(t)
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	newConfirmed := func(t *testing.T) *booking.Booking {
		t.Helper()
		r := mustRange(t, start, start.Add(2*time.Hour))
		b, err := booking.New(fac, uuid.New(), r, booking.KindPrebooked, created)
		require.NoError(t, err)
		return b
	}

	t.Run("before start is refund eligible", func(t *testing.T) {
		b := newConfirmed(t)

		eligible, err := b.Cancel(start.Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, eligible)
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.ResolvedAt())
	})

	t.Run("after start forfeits the refund", func(t *testing.T) {
		b := newConfirmed(t)
		require.NoError(t, b.BeginCheckInWindow(start))

		eligible, err := b.Cancel(start.Add(5 * time.Minute))
		require.NoError(t, err)
		assert.False(t, eligible)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		b := newConfirmed(t)
		_, err := b.Cancel(start.Add(-time.Hour))
		require.NoError(t, err)

		_, err = b.Cancel(start.Add(-time.Hour))
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		b := newConfirmed(t)
		require.NoError(t, b.BeginCheckInWindow(start))
		require.NoError(t, b.CheckIn(start.Add(5*time.Minute), grace))
		require.NoError(t, b.Complete(start.Add(2*time.Hour)))

		_, err := b.Cancel(start.Add(3 * time.Hour))
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestReleaseNoShow(t *testing.T) {
	fac := testFacility(t)
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	r := mustRange(t, start, start.Add(time.Hour))
	b, err := booking.New(fac, uuid.New(), r, booking.KindPrebooked, created)
	require.NoError(t, err)
	require.NoError(t, b.BeginCheckInWindow(start))

	require.NoError(t, b.ReleaseNoShow(start.Add(grace)))
	assert.Equal(t, booking.StatusReleased, b.Status())

	// second release must fail so the caller can treat it as a no-op
	err = b.ReleaseNoShow(start.Add(grace))
	require.ErrorIs(t, err, booking.ErrInvalidTransition)
}
