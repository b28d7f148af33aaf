package commands

import (
	"context"
	"sort"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type InviteCommands interface {
	Invite(ctx context.Context, actor Actor, bookingID, inviteeID uuid.UUID) (uuid.UUID, error)
	Respond(ctx context.Context, actor Actor, inviteID uuid.UUID, accept bool) error
}

type inviteCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewInviteCommands(uow shared.UnitOfWork, clk clock.Clock) InviteCommands {
	return &inviteCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (c *inviteCommandsImpl) Invite(ctx context.Context, actor Actor, bookingID, inviteeID uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	var inviteID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.AccountID() != actor.ID {
			return errs.ErrForbidden
		}
		if !invitable(bk.Status()) {
			return errs.ErrInvalidStateTransition
		}
		if _, err := tx.Reads().AccountByID(ctx, inviteeID); err != nil {
			return err
		}

		fac, err := tx.Reads().FacilityByID(ctx, bk.FacilityID())
		if err != nil {
			return err
		}

		invites, err := tx.Invites().ListByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		participants := 1
		for _, inv := range invites {
			if inv.Status() == cobooking.InviteDeclined {
				continue
			}
			if inv.InviteeID() == inviteeID {
				return errs.ErrDuplicateInvite
			}
			participants++
		}
		if participants+1 > fac.Capacity() {
			return errs.ErrCapacityExceeded
		}

		inv, err := cobooking.NewInvite(bookingID, actor.ID, inviteeID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDuplicateInvite)
		}
		if err := tx.Invites().Create(ctx, inv); err != nil {
			return err
		}
		inviteID = inv.ID()
		return enqueueInviteNotification(ctx, tx, inv, bk, fac, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return inviteID, nil
}

// Respond records the invitee's answer and, on acceptance, rebalances who
// has paid what. The recompute is delta based so responses commute: the
// final per-account charges depend only on the set of accepted invitees,
// not on the order the answers arrived.
func (c *inviteCommandsImpl) Respond(ctx context.Context, actor Actor, inviteID uuid.UUID, accept bool) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inv, err := tx.Invites().FindByID(ctx, inviteID)
		if err != nil {
			return err
		}
		if inv.InviteeID() != actor.ID {
			return errs.ErrForbidden
		}

		bk, err := tx.Bookings().FindByID(ctx, inv.BookingID())
		if err != nil {
			return err
		}
		if !invitable(bk.Status()) {
			return errs.ErrInvalidStateTransition
		}

		to := cobooking.InviteAccepted
		if !accept {
			to = cobooking.InviteDeclined
		}
		if accept {
			if err := inv.Accept(now); err != nil {
				return errs.Mark(err, errs.ErrInviteResolved)
			}
		} else {
			if err := inv.Decline(now); err != nil {
				return errs.Mark(err, errs.ErrInviteResolved)
			}
		}

		applied, err := tx.Invites().UpdateStatus(ctx, inv.ID(), cobooking.InvitePending, to, now)
		if err != nil {
			return err
		}
		if !applied {
			return errs.ErrInviteResolved
		}

		if !accept {
			return nil
		}
		return rebalanceShares(ctx, tx, bk, now)
	})
}

// invitable reports whether a booking still accepts invite activity. Once
// the session is underway or resolved the participant set is frozen.
func invitable(s booking.Status) bool {
	return s == booking.StatusConfirmed || s == booking.StatusAwaitingCheckIn
}

// rebalanceShares brings every participant's net payment in line with the
// current split. Must run inside the same transaction as the invite update.
func rebalanceShares(ctx context.Context, tx shared.Tx, bk *booking.Booking, now time.Time) error {
	invites, err := tx.Invites().ListByBooking(ctx, bk.ID())
	if err != nil {
		return err
	}
	var accepted []uuid.UUID
	for _, inv := range invites {
		if inv.Status() == cobooking.InviteAccepted {
			accepted = append(accepted, inv.InviteeID())
		}
	}

	targets := cobooking.SplitShares(bk.CreditCost(), bk.AccountID(), accepted)
	paid, err := tx.Ledger().NetPaidByAccount(ctx, bk.ID())
	if err != nil {
		return err
	}

	accountIDs := make([]uuid.UUID, 0, len(targets))
	for id := range targets {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool {
		return accountIDs[i].String() < accountIDs[j].String()
	})

	var entries []ledger.Entry
	for _, accountID := range accountIDs {
		delta := targets[accountID] - paid[accountID]
		switch {
		case delta > 0:
			balance, err := tx.Ledger().BalanceOf(ctx, accountID)
			if err != nil {
				return err
			}
			if balance < delta {
				return errs.ErrInsufficientCredits
			}
			entry, err := ledger.NewDebit(accountID, delta, ledger.ReasonCoBookingShareDebit, ptr(bk.ID()), nil, now)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		case delta < 0:
			entry, err := ledger.NewCredit(accountID, -delta, ledger.ReasonCoBookingShareRefund, ptr(bk.ID()), nil, now)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return tx.Ledger().Append(ctx, entries...)
}
