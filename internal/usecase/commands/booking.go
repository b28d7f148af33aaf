package commands

import (
	"context"
	"encoding/json"
	"time"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/domain/availability"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Actor is the authenticated principal performing a command.
type Actor struct {
	ID   uuid.UUID
	Role account.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == account.RoleAdmin
}

type CreateBookingInput struct {
	FacilityID  uuid.UUID
	Start       time.Time
	End         time.Time
	Kind        booking.Kind
	CoBookerIDs []uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, actor Actor, in CreateBookingInput) (uuid.UUID, error)
	Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) error
	CheckIn(ctx context.Context, actor Actor, bookingID uuid.UUID) error
	// ClaimReleased books the remainder of a released slot for the claimant.
	ClaimReleased(ctx context.Context, actor Actor, releasedBookingID uuid.UUID) (uuid.UUID, error)

	// Monitor-driven transitions. All are idempotent: losing a race with a
	// user action is a no-op, never an error.
	BeginCheckInWindow(ctx context.Context, bookingID uuid.UUID) error
	ReleaseExpired(ctx context.Context, bookingID uuid.UUID) error
	CompleteElapsed(ctx context.Context, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy config.BookingConfig
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, policy config.BookingConfig) BookingCommands {
	return &bookingCommandsImpl{
		uow:    uow,
		clock:  clk,
		policy: policy,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor Actor, in CreateBookingInput) (uuid.UUID, error) {
	fac, err := c.loadFacility(ctx, in.FacilityID)
	if err != nil {
		return uuid.Nil, err
	}

	timeRange, err := booking.NewTimeRange(in.Start, in.End)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeRange)
	}

	if err := validateCoBookers(actor.ID, in.CoBookerIDs, fac.Capacity()); err != nil {
		return uuid.Nil, err
	}

	now := c.clock.Now()
	bk, err := booking.New(fac, actor.ID, timeRange, in.Kind, now)
	if err != nil {
		return uuid.Nil, markBookingError(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockFacilityDay(ctx, fac.ID(), timeRange.Day()); err != nil {
			return err
		}

		occupying, err := occupanciesFor(ctx, tx, fac.ID(), timeRange.Day(), uuid.Nil)
		if err != nil {
			return err
		}
		if hits := availability.Conflicts(timeRange, occupying); len(hits) > 0 {
			return errs.ErrSlotConflict
		}

		if err := debitWithBalanceCheck(ctx, tx, actor.ID, bk.CreditCost(), ledger.ReasonBookingDebit, bk.ID(), now); err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, bk); err != nil {
			return err
		}

		for _, inviteeID := range in.CoBookerIDs {
			inv, err := cobooking.NewInvite(bk.ID(), actor.ID, inviteeID, now)
			if err != nil {
				return errs.Mark(err, errs.ErrDuplicateInvite)
			}
			if err := tx.Invites().Create(ctx, inv); err != nil {
				return err
			}
			if err := enqueueInviteNotification(ctx, tx, inv, bk, fac, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bk.ID(), nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.AccountID() != actor.ID && !actor.IsAdmin() {
			return errs.ErrForbidden
		}

		from := bk.Status()
		refundEligible, err := bk.Cancel(now)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}

		applied, err := tx.Bookings().UpdateStatus(ctx, bk.ID(), from, booking.StatusCancelled, bk.ResolvedAt())
		if err != nil {
			return err
		}
		if !applied {
			return errs.ErrInvalidStateTransition
		}

		if !refundEligible || c.policy.RefundPercent == 0 {
			return nil
		}
		refund := bk.CreditCost() * c.policy.RefundPercent / 100
		if refund == 0 {
			return nil
		}
		entry, err := ledger.NewCredit(bk.AccountID(), refund, ledger.ReasonCancellationRefund, ptr(bk.ID()), nil, now)
		if err != nil {
			return err
		}
		return tx.Ledger().Append(ctx, entry)
	})
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actor Actor, bookingID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := c.authorizeParticipant(ctx, tx, bk, actor); err != nil {
			return err
		}

		from := bk.Status()
		if err := bk.CheckIn(now, c.policy.CheckInGrace); err != nil {
			return markBookingError(err)
		}

		applied, err := tx.Bookings().UpdateStatus(ctx, bk.ID(), from, booking.StatusCheckedIn, nil)
		if err != nil {
			return err
		}
		if !applied {
			// Lost the race against the deadline monitor; the caller will
			// observe the booking as released.
			return errs.ErrCheckInExpired
		}
		return nil
	})
}

func (c *bookingCommandsImpl) ClaimReleased(ctx context.Context, actor Actor, releasedBookingID uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now().Truncate(time.Minute)

	var claimedID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orig, err := tx.Bookings().FindByID(ctx, releasedBookingID)
		if err != nil {
			return err
		}
		if orig.Status() != booking.StatusReleased {
			return errs.ErrInvalidStateTransition
		}
		if orig.AccountID() == actor.ID {
			// The original booker forfeited the slot; it goes to others.
			return errs.ErrForbidden
		}
		if !now.Before(orig.TimeRange().End()) || now.Before(orig.TimeRange().Start()) {
			return errs.ErrClaimWindowClosed
		}

		fac, err := c.loadFacilityTx(ctx, tx, orig.FacilityID())
		if err != nil {
			return err
		}

		remainder, err := booking.NewTimeRange(now, orig.TimeRange().End())
		if err != nil {
			return errs.Mark(err, errs.ErrClaimWindowClosed)
		}

		if err := tx.LockFacilityDay(ctx, fac.ID(), remainder.Day()); err != nil {
			return err
		}
		occupying, err := occupanciesFor(ctx, tx, fac.ID(), remainder.Day(), uuid.Nil)
		if err != nil {
			return err
		}
		if hits := availability.Conflicts(remainder, occupying); len(hits) > 0 {
			return errs.ErrSlotConflict
		}

		claimed, err := booking.New(fac, actor.ID, remainder, booking.KindAdHoc, now)
		if err != nil {
			return markBookingError(err)
		}

		if err := debitWithBalanceCheck(ctx, tx, actor.ID, claimed.CreditCost(), ledger.ReasonClaimDebit, claimed.ID(), now); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, claimed); err != nil {
			return err
		}
		claimedID = claimed.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return claimedID, nil
}

func (c *bookingCommandsImpl) BeginCheckInWindow(ctx context.Context, bookingID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.Status() != booking.StatusConfirmed {
			return nil
		}
		if err := bk.BeginCheckInWindow(now); err != nil {
			return nil
		}
		_, err = tx.Bookings().UpdateStatus(ctx, bk.ID(), booking.StatusConfirmed, booking.StatusAwaitingCheckIn, nil)
		return err
	})
}

// ReleaseExpired reclaims a no-show booking. Calling it on an already
// resolved booking is deliberately a no-op so the monitor can race a
// concurrent check-in safely. No refund is issued: the forfeited cost funds
// the claim workflow.
func (c *bookingCommandsImpl) ReleaseExpired(ctx context.Context, bookingID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		from := bk.Status()
		if from != booking.StatusConfirmed && from != booking.StatusAwaitingCheckIn {
			return nil
		}
		if now.Before(bk.CheckInDeadline(c.policy.CheckInGrace)) {
			return nil
		}
		if err := bk.ReleaseNoShow(now); err != nil {
			return nil
		}
		_, err = tx.Bookings().UpdateStatus(ctx, bk.ID(), from, booking.StatusReleased, bk.ResolvedAt())
		return err
	})
}

func (c *bookingCommandsImpl) CompleteElapsed(ctx context.Context, bookingID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.Status() != booking.StatusCheckedIn || now.Before(bk.TimeRange().End()) {
			return nil
		}
		if err := bk.Complete(now); err != nil {
			return nil
		}
		_, err = tx.Bookings().UpdateStatus(ctx, bk.ID(), booking.StatusCheckedIn, booking.StatusCompleted, bk.ResolvedAt())
		return err
	})
}

func (c *bookingCommandsImpl) authorizeParticipant(ctx context.Context, tx shared.Tx, bk *booking.Booking, actor Actor) error {
	if bk.AccountID() == actor.ID || actor.IsAdmin() {
		return nil
	}
	invites, err := tx.Invites().ListByBooking(ctx, bk.ID())
	if err != nil {
		return err
	}
	for _, inv := range invites {
		if inv.InviteeID() == actor.ID && inv.Status() == cobooking.InviteAccepted {
			return nil
		}
	}
	return errs.ErrNotBookingParticipant
}

func (c *bookingCommandsImpl) loadFacility(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	fac, err := c.uow.Reads().FacilityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fac, nil
}

func (c *bookingCommandsImpl) loadFacilityTx(ctx context.Context, tx shared.Tx, id uuid.UUID) (*facility.Facility, error) {
	return tx.Reads().FacilityByID(ctx, id)
}

func validateCoBookers(primaryID uuid.UUID, coBookerIDs []uuid.UUID, capacity int) error {
	if len(coBookerIDs)+1 > capacity {
		return errs.ErrCapacityExceeded
	}
	seen := make(map[uuid.UUID]struct{}, len(coBookerIDs))
	for _, id := range coBookerIDs {
		if id == primaryID {
			return errs.ErrDuplicateInvite
		}
		if _, dup := seen[id]; dup {
			return errs.ErrDuplicateInvite
		}
		seen[id] = struct{}{}
	}
	return nil
}

// occupanciesFor gathers everything that blocks a facility day: occupying
// bookings plus maintenance blocks. excludeID skips one booking (unused for
// now, kept for claim re-checks).
func occupanciesFor(ctx context.Context, tx shared.Tx, facilityID uuid.UUID, day time.Time, excludeID uuid.UUID) ([]availability.Occupancy, error) {
	bookings, err := tx.Bookings().ListOccupying(ctx, facilityID, day)
	if err != nil {
		return nil, err
	}
	blocks, err := tx.Maintenance().ListOccupying(ctx, facilityID, day)
	if err != nil {
		return nil, err
	}

	occ := make([]availability.Occupancy, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		if b.ID() == excludeID || !b.Status().Occupies() {
			continue
		}
		occ = append(occ, availability.Occupancy{
			Ref:   b.ID(),
			Kind:  availability.OccupancyBooking,
			Range: b.TimeRange(),
		})
	}
	for _, blk := range blocks {
		occ = append(occ, availability.Occupancy{
			Ref:   blk.ID(),
			Kind:  availability.OccupancyMaintenance,
			Range: blk.TimeRange(),
		})
	}
	return occ, nil
}

// debitWithBalanceCheck re-reads the balance inside the transaction so the
// never-negative invariant holds under concurrency.
func debitWithBalanceCheck(ctx context.Context, tx shared.Tx, accountID uuid.UUID, amount int, reason ledger.Reason, bookingID uuid.UUID, now time.Time) error {
	balance, err := tx.Ledger().BalanceOf(ctx, accountID)
	if err != nil {
		return err
	}
	if balance < amount {
		return errs.ErrInsufficientCredits
	}
	entry, err := ledger.NewDebit(accountID, amount, reason, ptr(bookingID), nil, now)
	if err != nil {
		return err
	}
	return tx.Ledger().Append(ctx, entry)
}

func enqueueInviteNotification(ctx context.Context, tx shared.Tx, inv *cobooking.Invite, bk *booking.Booking, fac *facility.Facility, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"invite_id":     inv.ID(),
		"invitee_id":    inv.InviteeID(),
		"booking_id":    bk.ID(),
		"facility_name": fac.Name(),
		"starts_at":     bk.TimeRange().Start(),
		"ends_at":       bk.TimeRange().End(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "cobooking_invited", payload, now)
}

func markBookingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, booking.ErrOutsideOperatingHours):
		return errs.Mark(err, errs.ErrOutsideOperatingHours)
	case errors.Is(err, booking.ErrAdHocNotToday), errors.Is(err, booking.ErrPastStart),
		errors.Is(err, booking.ErrInvalidRange), errors.Is(err, booking.ErrSubMinutePrecision),
		errors.Is(err, booking.ErrCrossesMidnight):
		return errs.Mark(err, errs.ErrInvalidTimeRange)
	case errors.Is(err, booking.ErrCheckInTooEarly):
		return errs.Mark(err, errs.ErrCheckInTooEarly)
	case errors.Is(err, booking.ErrCheckInExpired):
		return errs.Mark(err, errs.ErrCheckInExpired)
	case errors.Is(err, booking.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrInvalidStateTransition)
	default:
		return err
	}
}

func ptr[T any](v T) *T {
	return &v
}
