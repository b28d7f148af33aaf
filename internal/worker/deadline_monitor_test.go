//go:build unit

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"
	"facility-booking/internal/worker"
	"facility-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepBase = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

var sweepPolicy = config.BookingConfig{
	CheckInGrace:      15 * time.Minute,
	RefundPercent:     80,
	MonitorInterval:   30 * time.Second,
	MonitorBatchLimit: 100,
}

type sweepEnv struct {
	store   *fake.Store
	clk     *clock.FakeClock
	cmds    commands.BookingCommands
	monitor *worker.DeadlineMonitor
}

func newSweepEnv() *sweepEnv {
	store := fake.NewStore()
	clk := clock.NewFakeClock(sweepBase)
	uow := fake.NewUoW(store)
	cmds := commands.NewBookingCommands(uow, clk, sweepPolicy)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &sweepEnv{
		store:   store,
		clk:     clk,
		cmds:    cmds,
		monitor: worker.NewDeadlineMonitor(uow, cmds, clk, sweepPolicy, logger),
	}
}

// book seeds a member with credits and books one hour starting at the offset.
func (e *sweepEnv) book(t *testing.T, startOffset time.Duration) uuid.UUID {
	t.Helper()
	hours, err := facility.NewOperatingHours(0, 24*60)
	require.NoError(t, err)
	fac, err := facility.NewFacility(uuid.New(), "Sweep Court", facility.KindCourt, 4, 10, hours)
	require.NoError(t, err)
	e.store.AddFacility(fac)

	actorID := uuid.New()
	e.store.AddAccount(&shared.AccountSnapshot{
		ID:       actorID,
		Email:    actorID.String() + "@example.com",
		Role:     account.RoleMember,
		IsActive: true,
	})
	e.store.Grant(actorID, 50)

	id, err := e.cmds.Create(context.Background(), commands.Actor{ID: actorID, Role: account.RoleMember}, commands.CreateBookingInput{
		FacilityID: fac.ID(),
		Start:      sweepBase.Add(startOffset),
		End:        sweepBase.Add(startOffset + time.Hour),
		Kind:       booking.KindPrebooked,
	})
	require.NoError(t, err)
	return id
}

func TestDeadlineMonitor_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("opens the check-in window at start time", func(t *testing.T) {
		e := newSweepEnv()
		id := e.book(t, time.Hour)

		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusConfirmed, e.store.Bookings[id].Status())

		e.clk.Advance(time.Hour)
		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusAwaitingCheckIn, e.store.Bookings[id].Status())
	})

	t.Run("releases a no-show after the grace period", func(t *testing.T) {
		e := newSweepEnv()
		id := e.book(t, time.Hour)

		e.clk.Advance(time.Hour + 14*time.Minute)
		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusAwaitingCheckIn, e.store.Bookings[id].Status())

		e.clk.Advance(time.Minute)
		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusReleased, e.store.Bookings[id].Status())
	})

	t.Run("a missed promotion never saves a no-show", func(t *testing.T) {
		// The monitor was down across the whole window; the first sweep
		// afterward must release in one pass even from confirmed.
		e := newSweepEnv()
		id := e.book(t, time.Hour)

		e.clk.Advance(2 * time.Hour)
		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusReleased, e.store.Bookings[id].Status())
	})

	t.Run("completes a checked-in booking at its end time", func(t *testing.T) {
		e := newSweepEnv()
		id := e.book(t, time.Hour)
		owner := e.store.Bookings[id].AccountID()

		e.clk.Advance(time.Hour + 5*time.Minute)
		require.NoError(t, e.cmds.CheckIn(ctx, commands.Actor{ID: owner, Role: account.RoleMember}, id))

		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusCheckedIn, e.store.Bookings[id].Status())

		e.clk.Advance(55 * time.Minute)
		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusCompleted, e.store.Bookings[id].Status())
	})

	t.Run("sweeping twice changes nothing", func(t *testing.T) {
		e := newSweepEnv()
		id := e.book(t, time.Hour)
		owner := e.store.Bookings[id].AccountID()

		e.clk.Advance(2 * time.Hour)
		require.NoError(t, e.monitor.RunOnce(ctx))
		entries := len(e.store.EntriesFor(owner))
		balance := e.store.BalanceOf(owner)

		require.NoError(t, e.monitor.RunOnce(ctx))
		assert.Equal(t, booking.StatusReleased, e.store.Bookings[id].Status())
		assert.Len(t, e.store.EntriesFor(owner), entries)
		assert.Equal(t, balance, e.store.BalanceOf(owner))
	})
}

func TestDeadlineMonitor_StartStop(t *testing.T) {
	e := newSweepEnv()
	e.monitor.Start()
	e.monitor.Stop()
}
