package queries

import (
	"context"

	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// FindByID returns a booking visible to the actor: its primary, one of
	// its invitees, or an admin.
	FindByID(ctx context.Context, actor commands.Actor, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, actor commands.Actor) ([]BookingView, error)
	ListAll(ctx context.Context, actor commands.Actor, limit, offset int) ([]BookingView, error)
	// ListClaimable lists released bookings anyone may claim right now.
	ListClaimable(ctx context.Context, actor commands.Actor) ([]BookingView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	invites   InviteReadStore
	clock     clock.Clock
	policy    config.BookingConfig
}

func NewBookingQueries(readStore BookingReadStore, invites InviteReadStore, clk clock.Clock, policy config.BookingConfig) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		invites:   invites,
		clock:     clk,
		policy:    policy,
	}
}

func (q *bookingQueriesImpl) FindByID(ctx context.Context, actor commands.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.AccountID != actor.ID && !actor.IsAdmin() {
		invited, err := q.isInvitee(ctx, actor.ID, id)
		if err != nil {
			return nil, err
		}
		if !invited {
			return nil, errs.ErrNotBookingParticipant
		}
	}
	q.fillDeadline(view)
	return view, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor commands.Actor) ([]BookingView, error) {
	views, err := q.readStore.ListByAccount(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for i := range views {
		q.fillDeadline(&views[i])
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor commands.Actor, limit, offset int) ([]BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	views, err := q.readStore.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range views {
		q.fillDeadline(&views[i])
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListClaimable(ctx context.Context, actor commands.Actor) ([]BookingView, error) {
	return q.readStore.ListClaimable(ctx, q.clock.Now())
}

func (q *bookingQueriesImpl) isInvitee(ctx context.Context, accountID, bookingID uuid.UUID) (bool, error) {
	invites, err := q.invites.ListForInvitee(ctx, accountID)
	if err != nil {
		return false, err
	}
	for _, inv := range invites {
		if inv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (q *bookingQueriesImpl) fillDeadline(v *BookingView) {
	v.CheckInDeadline = v.StartsAt.Add(q.policy.CheckInGrace)
}
