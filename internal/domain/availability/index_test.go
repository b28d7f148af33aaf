//go:build unit

package availability_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/availability"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, fromHour, toHour float64) booking.TimeRange {
	t.Helper()
	r, err := booking.NewTimeRange(
		day.Add(time.Duration(fromHour*60)*time.Minute),
		day.Add(time.Duration(toHour*60)*time.Minute),
	)
	require.NoError(t, err)
	return r
}

func occ(t *testing.T, kind availability.OccupancyKind, fromHour, toHour float64) availability.Occupancy {
	t.Helper()
	return availability.Occupancy{
		Ref:   uuid.New(),
		Kind:  kind,
		Range: at(t, fromHour, toHour),
	}
}

func TestConflicts(t *testing.T) {
	occupying := []availability.Occupancy{
		occ(t, availability.OccupancyBooking, 10, 12),
		occ(t, availability.OccupancyMaintenance, 14, 16),
	}

	t.Run("empty result for a free range", func(t *testing.T) {
		hits := availability.Conflicts(at(t, 12, 14), occupying)
		assert.Empty(t, hits)
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		hits := availability.Conflicts(at(t, 16, 18), occupying)
		assert.Empty(t, hits)
	})

	t.Run("partial overlap conflicts", func(t *testing.T) {
		hits := availability.Conflicts(at(t, 11, 13), occupying)
		require.Len(t, hits, 1)
		assert.Equal(t, availability.OccupancyBooking, hits[0].Kind)
	})

	t.Run("maintenance blocks conflict like bookings", func(t *testing.T) {
		hits := availability.Conflicts(at(t, 15, 17), occupying)
		require.Len(t, hits, 1)
		assert.Equal(t, availability.OccupancyMaintenance, hits[0].Kind)
	})

	t.Run("wide range hits everything in start order", func(t *testing.T) {
		hits := availability.Conflicts(at(t, 9, 17), occupying)
		require.Len(t, hits, 2)
		assert.True(t, hits[0].Range.Start().Before(hits[1].Range.Start()))
	})
}

func TestFreeSlots(t *testing.T) {
	hours, err := facility.NewOperatingHours(8*60, 22*60)
	require.NoError(t, err)

	slot := func(fromHour, toHour int) availability.FreeSlot {
		return availability.FreeSlot{
			Start: day.Add(time.Duration(fromHour) * time.Hour),
			End:   day.Add(time.Duration(toHour) * time.Hour),
		}
	}

	t.Run("empty day is one open window", func(t *testing.T) {
		free := availability.FreeSlots(hours, day, nil)
		expected := []availability.FreeSlot{slot(8, 22)}

		if diff := cmp.Diff(expected, free); diff != "" {
			t.Errorf("free slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("occupancies punch ordered gaps", func(t *testing.T) {
		occupying := []availability.Occupancy{
			occ(t, availability.OccupancyMaintenance, 14, 16),
			occ(t, availability.OccupancyBooking, 10, 12),
		}

		free := availability.FreeSlots(hours, day, occupying)
		expected := []availability.FreeSlot{slot(8, 10), slot(12, 14), slot(16, 22)}

		if diff := cmp.Diff(expected, free); diff != "" {
			t.Errorf("free slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overlapping occupancies merge", func(t *testing.T) {
		occupying := []availability.Occupancy{
			occ(t, availability.OccupancyBooking, 10, 13),
			occ(t, availability.OccupancyMaintenance, 12, 15),
		}

		free := availability.FreeSlots(hours, day, occupying)
		expected := []availability.FreeSlot{slot(8, 10), slot(15, 22)}

		if diff := cmp.Diff(expected, free); diff != "" {
			t.Errorf("free slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("occupancy clipped to operating hours", func(t *testing.T) {
		occupying := []availability.Occupancy{
			occ(t, availability.OccupancyBooking, 8, 9),
			occ(t, availability.OccupancyBooking, 21, 22),
		}

		free := availability.FreeSlots(hours, day, occupying)
		expected := []availability.FreeSlot{slot(9, 21)}

		if diff := cmp.Diff(expected, free); diff != "" {
			t.Errorf("free slots mismatch (-want +got):\n%s", diff)
		}
	})
}
