//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facility-booking/internal/pkg/errs"
)

func TestBookingCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the full cost and stores a confirmed booking", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)

		id, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(26 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)

		bk := e.store.Bookings[id]
		require.NotNil(t, bk)
		assert.Equal(t, booking.StatusConfirmed, bk.Status())
		assert.Equal(t, 20, bk.CreditCost())
		assert.Equal(t, 30, e.store.BalanceOf(actor.ID))
	})

	t.Run("rejects an unknown facility", func(t *testing.T) {
		e := newEnv()
		actor := e.addMember(t, 50)

		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: uuid.New(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(25 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.ErrorIs(t, err, errs.ErrUnknownFacility)
	})

	t.Run("rejects when the balance cannot cover the cost", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 19)

		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(26 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, 19, e.store.BalanceOf(actor.ID))
		assert.Empty(t, e.store.Bookings)
	})

	t.Run("rejects an overlapping slot and leaves the balance untouched", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		first := e.addMember(t, 50)
		second := e.addMember(t, 50)

		start := baseTime.Add(24 * time.Hour)
		_, err := e.bookingCommands().Create(ctx, first, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      start,
			End:        start.Add(2 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)

		_, err = e.bookingCommands().Create(ctx, second, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      start.Add(time.Hour),
			End:        start.Add(3 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.Equal(t, 50, e.store.BalanceOf(second.ID))
	})

	t.Run("back to back slots do not conflict", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		first := e.addMember(t, 50)
		second := e.addMember(t, 50)

		start := baseTime.Add(24 * time.Hour)
		_, err := e.bookingCommands().Create(ctx, first, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      start,
			End:        start.Add(time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)

		_, err = e.bookingCommands().Create(ctx, second, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      start.Add(time.Hour),
			End:        start.Add(2 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.NoError(t, err)
	})

	t.Run("rejects a slot blocked by maintenance", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		admin := e.addAdmin(t)
		actor := e.addMember(t, 50)

		start := baseTime.Add(24 * time.Hour)
		_, err := e.maintenanceCommands().CreateBlock(ctx, admin, commands.CreateMaintenanceBlockInput{
			FacilityID: fac.ID(),
			Start:      start,
			End:        start.Add(2 * time.Hour),
			Reason:     "floor resurfacing",
		})
		require.NoError(t, err)

		_, err = e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      start.Add(time.Hour),
			End:        start.Add(3 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
	})

	t.Run("creates pending invites and queues notifications for co-bookers", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)
		mate := e.addMember(t, 0)

		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID:  fac.ID(),
			Start:       baseTime.Add(24 * time.Hour),
			End:         baseTime.Add(25 * time.Hour),
			Kind:        booking.KindPrebooked,
			CoBookerIDs: []uuid.UUID{mate.ID},
		})
		require.NoError(t, err)

		require.Len(t, e.store.Invites, 1)
		require.Len(t, e.store.Jobs, 1)
		assert.Equal(t, "cobooking_invited", e.store.Jobs[0].Kind)
		// The primary pays the full cost up front; shares move on acceptance.
		assert.Equal(t, 40, e.store.BalanceOf(actor.ID))
		assert.Equal(t, 0, e.store.BalanceOf(mate.ID))
	})

	t.Run("rejects more co-bookers than the facility holds", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 2, 10)
		actor := e.addMember(t, 50)

		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID:  fac.ID(),
			Start:       baseTime.Add(24 * time.Hour),
			End:         baseTime.Add(25 * time.Hour),
			Kind:        booking.KindPrebooked,
			CoBookerIDs: []uuid.UUID{uuid.New(), uuid.New()},
		})
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("rejects inviting yourself", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)

		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID:  fac.ID(),
			Start:       baseTime.Add(24 * time.Hour),
			End:         baseTime.Add(25 * time.Hour),
			Kind:        booking.KindPrebooked,
			CoBookerIDs: []uuid.UUID{actor.ID},
		})
		assert.ErrorIs(t, err, errs.ErrDuplicateInvite)
	})

	t.Run("rejects a range outside operating hours", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)

		day := baseTime.Add(24 * time.Hour).Truncate(24 * time.Hour)
		_, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      day.Add(6 * time.Hour),
			End:        day.Add(9 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		assert.ErrorIs(t, err, errs.ErrOutsideOperatingHours)
	})
}

func TestBookingCommands_Create_Concurrent(t *testing.T) {
	// Many actors race for the same slot; the facility-day serialization
	// must let exactly one through and charge exactly one.
	e := newEnv()
	fac := e.addFacility(t, 4, 10)
	cmds := e.bookingCommands()

	const contenders = 8
	actors := make([]commands.Actor, contenders)
	for i := range actors {
		actors[i] = e.addMember(t, 50)
	}

	start := baseTime.Add(24 * time.Hour)
	var wg sync.WaitGroup
	errsCh := make(chan error, contenders)
	for _, actor := range actors {
		wg.Add(1)
		go func(a commands.Actor) {
			defer wg.Done()
			_, err := cmds.Create(context.Background(), a, commands.CreateBookingInput{
				FacilityID: fac.ID(),
				Start:      start,
				End:        start.Add(time.Hour),
				Kind:       booking.KindPrebooked,
			})
			errsCh <- err
		}(actor)
	}
	wg.Wait()
	close(errsCh)

	succeeded, conflicted := 0, 0
	for err := range errsCh {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, errs.ErrSlotConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, contenders-1, conflicted)
	assert.Len(t, e.store.Bookings, 1)

	total := 0
	for _, a := range actors {
		total += e.store.BalanceOf(a.ID)
	}
	assert.Equal(t, contenders*50-10, total)
}

func TestBookingCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, commands.Actor, uuid.UUID) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)
		id, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(26 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)
		return e, actor, id
	}

	t.Run("before start refunds the policy fraction", func(t *testing.T) {
		e, actor, id := setup(t)

		require.NoError(t, e.bookingCommands().Cancel(ctx, actor, id))

		assert.Equal(t, booking.StatusCancelled, e.store.Bookings[id].Status())
		// 20 paid, 80 percent back.
		assert.Equal(t, 30+16, e.store.BalanceOf(actor.ID))
	})

	t.Run("after start forfeits the cost", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 30*time.Minute)

		require.NoError(t, e.bookingCommands().Cancel(ctx, actor, id))

		assert.Equal(t, booking.StatusCancelled, e.store.Bookings[id].Status())
		assert.Equal(t, 30, e.store.BalanceOf(actor.ID))
	})

	t.Run("only the owner or an admin may cancel", func(t *testing.T) {
		e, _, id := setup(t)
		stranger := e.addMember(t, 0)

		err := e.bookingCommands().Cancel(ctx, stranger, id)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		admin := e.addAdmin(t)
		assert.NoError(t, e.bookingCommands().Cancel(ctx, admin, id))
	})

	t.Run("cancelling twice is an invalid transition", func(t *testing.T) {
		e, actor, id := setup(t)

		require.NoError(t, e.bookingCommands().Cancel(ctx, actor, id))
		err := e.bookingCommands().Cancel(ctx, actor, id)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		// No second refund.
		assert.Equal(t, 30+16, e.store.BalanceOf(actor.ID))
	})
}

func TestBookingCommands_CheckIn(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, commands.Actor, uuid.UUID) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)
		id, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(25 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)
		return e, actor, id
	}

	t.Run("succeeds within the grace window", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 5*time.Minute)

		require.NoError(t, e.bookingCommands().CheckIn(ctx, actor, id))
		assert.Equal(t, booking.StatusCheckedIn, e.store.Bookings[id].Status())
	})

	t.Run("opens grace before the start time", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour - 10*time.Minute)

		assert.NoError(t, e.bookingCommands().CheckIn(ctx, actor, id))
	})

	t.Run("too early is rejected", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(23 * time.Hour)

		err := e.bookingCommands().CheckIn(ctx, actor, id)
		assert.ErrorIs(t, err, errs.ErrCheckInTooEarly)
	})

	t.Run("past the deadline is rejected", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 20*time.Minute)

		err := e.bookingCommands().CheckIn(ctx, actor, id)
		assert.ErrorIs(t, err, errs.ErrCheckInExpired)
	})

	t.Run("an accepted invitee may check in", func(t *testing.T) {
		e, actor, id := setup(t)
		mate := e.addMember(t, 20)

		invID, err := e.inviteCommands().Invite(ctx, actor, id, mate.ID)
		require.NoError(t, err)
		require.NoError(t, e.inviteCommands().Respond(ctx, mate, invID, true))

		e.clk.Advance(24 * time.Hour)
		assert.NoError(t, e.bookingCommands().CheckIn(ctx, mate, id))
	})

	t.Run("a pending invitee is not a participant", func(t *testing.T) {
		e, actor, id := setup(t)
		mate := e.addMember(t, 20)

		_, err := e.inviteCommands().Invite(ctx, actor, id, mate.ID)
		require.NoError(t, err)

		e.clk.Advance(24 * time.Hour)
		err = e.bookingCommands().CheckIn(ctx, mate, id)
		assert.ErrorIs(t, err, errs.ErrNotBookingParticipant)
	})
}

func TestBookingCommands_MonitorTransitions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, commands.Actor, uuid.UUID) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		actor := e.addMember(t, 50)
		id, err := e.bookingCommands().Create(ctx, actor, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(25 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)
		return e, actor, id
	}

	t.Run("BeginCheckInWindow promotes at the start time", func(t *testing.T) {
		e, _, id := setup(t)
		e.clk.Advance(24 * time.Hour)

		require.NoError(t, e.bookingCommands().BeginCheckInWindow(ctx, id))
		assert.Equal(t, booking.StatusAwaitingCheckIn, e.store.Bookings[id].Status())
	})

	t.Run("BeginCheckInWindow before the start is a no-op", func(t *testing.T) {
		e, _, id := setup(t)
		e.clk.Advance(23 * time.Hour)

		require.NoError(t, e.bookingCommands().BeginCheckInWindow(ctx, id))
		assert.Equal(t, booking.StatusConfirmed, e.store.Bookings[id].Status())
	})

	t.Run("ReleaseExpired forfeits a no-show without a refund", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 16*time.Minute)

		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		assert.Equal(t, booking.StatusReleased, e.store.Bookings[id].Status())
		assert.Equal(t, 40, e.store.BalanceOf(actor.ID))
	})

	t.Run("ReleaseExpired before the deadline is a no-op", func(t *testing.T) {
		e, _, id := setup(t)
		e.clk.Advance(24*time.Hour + 10*time.Minute)

		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		assert.Equal(t, booking.StatusConfirmed, e.store.Bookings[id].Status())
	})

	t.Run("ReleaseExpired twice appends nothing twice", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 16*time.Minute)

		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		entriesBefore := len(e.store.EntriesFor(actor.ID))

		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		assert.Len(t, e.store.EntriesFor(actor.ID), entriesBefore)
		assert.Equal(t, booking.StatusReleased, e.store.Bookings[id].Status())
	})

	t.Run("ReleaseExpired loses to a completed check-in", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24*time.Hour + 5*time.Minute)
		require.NoError(t, e.bookingCommands().CheckIn(ctx, actor, id))

		e.clk.Advance(15 * time.Minute)
		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		assert.Equal(t, booking.StatusCheckedIn, e.store.Bookings[id].Status())
	})

	t.Run("CompleteElapsed closes out a checked-in booking at its end", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24 * time.Hour)
		require.NoError(t, e.bookingCommands().CheckIn(ctx, actor, id))

		e.clk.Advance(time.Hour)
		require.NoError(t, e.bookingCommands().CompleteElapsed(ctx, id))
		assert.Equal(t, booking.StatusCompleted, e.store.Bookings[id].Status())
	})

	t.Run("CompleteElapsed before the end is a no-op", func(t *testing.T) {
		e, actor, id := setup(t)
		e.clk.Advance(24 * time.Hour)
		require.NoError(t, e.bookingCommands().CheckIn(ctx, actor, id))

		e.clk.Advance(30 * time.Minute)
		require.NoError(t, e.bookingCommands().CompleteElapsed(ctx, id))
		assert.Equal(t, booking.StatusCheckedIn, e.store.Bookings[id].Status())
	})
}

func TestBookingCommands_ClaimReleased(t *testing.T) {
	ctx := context.Background()

	// A one-hour booking starting baseTime+24h, released by the monitor
	// after the grace period.
	setup := func(t *testing.T) (*env, commands.Actor, uuid.UUID) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		owner := e.addMember(t, 50)
		id, err := e.bookingCommands().Create(ctx, owner, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(25 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)

		e.clk.Advance(24*time.Hour + 16*time.Minute)
		require.NoError(t, e.bookingCommands().ReleaseExpired(ctx, id))
		return e, owner, id
	}

	t.Run("claims the remainder of the slot as an ad-hoc booking", func(t *testing.T) {
		e, _, released := setup(t)
		claimant := e.addMember(t, 50)

		claimedID, err := e.bookingCommands().ClaimReleased(ctx, claimant, released)
		require.NoError(t, err)

		claimed := e.store.Bookings[claimedID]
		require.NotNil(t, claimed)
		assert.Equal(t, booking.KindAdHoc, claimed.Kind())
		assert.Equal(t, booking.StatusAwaitingCheckIn, claimed.Status())
		assert.Equal(t, e.clk.Now().Truncate(time.Minute), claimed.TimeRange().Start())
		assert.Equal(t, baseTime.Add(25*time.Hour), claimed.TimeRange().End())
		// 44 minutes remain: ceil(44 * 10 / 60) credits.
		assert.Equal(t, 8, claimed.CreditCost())
		assert.Equal(t, 42, e.store.BalanceOf(claimant.ID))
	})

	t.Run("the original booker may not claim their own forfeit", func(t *testing.T) {
		e, owner, released := setup(t)

		_, err := e.bookingCommands().ClaimReleased(ctx, owner, released)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("claim closes when the slot has ended", func(t *testing.T) {
		e, _, released := setup(t)
		claimant := e.addMember(t, 50)
		e.clk.Advance(time.Hour)

		_, err := e.bookingCommands().ClaimReleased(ctx, claimant, released)
		assert.ErrorIs(t, err, errs.ErrClaimWindowClosed)
	})

	t.Run("only a released booking is claimable", func(t *testing.T) {
		e := newEnv()
		fac := e.addFacility(t, 4, 10)
		owner := e.addMember(t, 50)
		id, err := e.bookingCommands().Create(ctx, owner, commands.CreateBookingInput{
			FacilityID: fac.ID(),
			Start:      baseTime.Add(24 * time.Hour),
			End:        baseTime.Add(25 * time.Hour),
			Kind:       booking.KindPrebooked,
		})
		require.NoError(t, err)

		claimant := e.addMember(t, 50)
		_, err = e.bookingCommands().ClaimReleased(ctx, claimant, id)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("claiming needs enough credits for the remainder", func(t *testing.T) {
		e, _, released := setup(t)
		claimant := e.addMember(t, 5)

		_, err := e.bookingCommands().ClaimReleased(ctx, claimant, released)
		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
	})
}

// Credits are conserved: every movement is an append, so the sum of all
// balances plus forfeits always reconciles against the grants.
func TestBookingCommands_LedgerConservation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	fac := e.addFacility(t, 4, 10)
	a := e.addMember(t, 100)
	b := e.addMember(t, 100)

	id, err := e.bookingCommands().Create(ctx, a, commands.CreateBookingInput{
		FacilityID: fac.ID(),
		Start:      baseTime.Add(24 * time.Hour),
		End:        baseTime.Add(25 * time.Hour),
		Kind:       booking.KindPrebooked,
	})
	require.NoError(t, err)
	require.NoError(t, e.bookingCommands().Cancel(ctx, a, id))

	_, err = e.bookingCommands().Create(ctx, b, commands.CreateBookingInput{
		FacilityID: fac.ID(),
		Start:      baseTime.Add(26 * time.Hour),
		End:        baseTime.Add(28 * time.Hour),
		Kind:       booking.KindPrebooked,
	})
	require.NoError(t, err)

	sum := func(entries []ledger.Entry) int {
		total := 0
		for _, entry := range entries {
			total += entry.Amount
		}
		return total
	}
	assert.Equal(t, e.store.BalanceOf(a.ID), sum(e.store.EntriesFor(a.ID)))
	assert.Equal(t, e.store.BalanceOf(b.ID), sum(e.store.EntriesFor(b.ID)))
	assert.Equal(t, 100-10+8, e.store.BalanceOf(a.ID))
	assert.Equal(t, 100-20, e.store.BalanceOf(b.ID))
}
