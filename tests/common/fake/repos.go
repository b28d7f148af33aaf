package fake

import (
	"context"
	"sort"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/domain/maintenance"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type bookingRepo struct {
	store *Store
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.store.Bookings[b.ID()] = b
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.store.Bookings[id]
	if !ok {
		return nil, errs.ErrBookingNotFound
	}
	// Return a reconstructed copy so command-side mutations stay invisible
	// until UpdateStatus persists them, like rows in a real store.
	return booking.Reconstruct(b.ID(), b.FacilityID(), b.AccountID(), b.TimeRange(),
		b.Kind(), b.CreditCost(), b.Status(), b.CreatedAt(), b.ResolvedAt()), nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status, resolvedAt *time.Time) (bool, error) {
	b, ok := r.store.Bookings[id]
	if !ok {
		return false, errs.ErrBookingNotFound
	}
	if b.Status() != from {
		return false, nil
	}
	r.store.Bookings[id] = booking.Reconstruct(b.ID(), b.FacilityID(), b.AccountID(),
		b.TimeRange(), b.Kind(), b.CreditCost(), to, b.CreatedAt(), resolvedAt)
	return true, nil
}

func (r *bookingRepo) ListOccupying(_ context.Context, facilityID uuid.UUID, day time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.store.Bookings {
		if b.FacilityID() == facilityID && b.TimeRange().Day().Equal(day) && b.Status().Occupies() {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *bookingRepo) ListConfirmedStartedBefore(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(limit, func(b *booking.Booking) bool {
		return b.Status() == booking.StatusConfirmed && !b.TimeRange().Start().After(cutoff)
	})
}

func (r *bookingRepo) ListUncheckedStartedBefore(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(limit, func(b *booking.Booking) bool {
		unchecked := b.Status() == booking.StatusConfirmed || b.Status() == booking.StatusAwaitingCheckIn
		return unchecked && !b.TimeRange().Start().After(cutoff)
	})
}

func (r *bookingRepo) ListCheckedInEndedBefore(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(limit, func(b *booking.Booking) bool {
		return b.Status() == booking.StatusCheckedIn && !b.TimeRange().End().After(cutoff)
	})
}

func (r *bookingRepo) listIDs(limit int, match func(*booking.Booking) bool) ([]uuid.UUID, error) {
	var matched []*booking.Booking
	for _, b := range r.store.Bookings {
		if match(b) {
			matched = append(matched, b)
		}
	}
	sortBookings(matched)
	var ids []uuid.UUID
	for _, b := range matched {
		if len(ids) == limit {
			break
		}
		ids = append(ids, b.ID())
	}
	return ids, nil
}

func sortBookings(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].TimeRange().Start().Before(bs[j].TimeRange().Start())
	})
}

type inviteRepo struct {
	store *Store
}

func (r *inviteRepo) Create(_ context.Context, inv *cobooking.Invite) error {
	for _, existing := range r.store.Invites {
		if existing.BookingID() == inv.BookingID() && existing.InviteeID() == inv.InviteeID() &&
			existing.Status() != cobooking.InviteDeclined {
			return errs.ErrDuplicateInvite
		}
	}
	r.store.Invites[inv.ID()] = inv
	return nil
}

func (r *inviteRepo) FindByID(_ context.Context, id uuid.UUID) (*cobooking.Invite, error) {
	inv, ok := r.store.Invites[id]
	if !ok {
		return nil, errs.ErrInviteNotFound
	}
	return cobooking.Reconstruct(inv.ID(), inv.BookingID(), inv.InviteeID(),
		inv.Status(), inv.InvitedAt(), inv.RespondedAt()), nil
}

func (r *inviteRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*cobooking.Invite, error) {
	var out []*cobooking.Invite
	for _, inv := range r.store.Invites {
		if inv.BookingID() == bookingID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InvitedAt().Before(out[j].InvitedAt())
	})
	return out, nil
}

func (r *inviteRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to cobooking.InviteStatus, respondedAt time.Time) (bool, error) {
	inv, ok := r.store.Invites[id]
	if !ok {
		return false, errs.ErrInviteNotFound
	}
	if inv.Status() != from {
		return false, nil
	}
	r.store.Invites[id] = cobooking.Reconstruct(inv.ID(), inv.BookingID(), inv.InviteeID(),
		to, inv.InvitedAt(), &respondedAt)
	return true, nil
}

type ledgerRepo struct {
	store *Store
}

func (r *ledgerRepo) Append(_ context.Context, entries ...ledger.Entry) error {
	r.store.Entries = append(r.store.Entries, entries...)
	return nil
}

func (r *ledgerRepo) BalanceOf(_ context.Context, accountID uuid.UUID) (int, error) {
	return r.store.balanceLocked(accountID), nil
}

func (r *ledgerRepo) NetPaidByAccount(_ context.Context, bookingID uuid.UUID) (map[uuid.UUID]int, error) {
	paid := make(map[uuid.UUID]int)
	for _, e := range r.store.Entries {
		if e.BookingID != nil && *e.BookingID == bookingID {
			paid[e.AccountID] -= e.Amount
		}
	}
	return paid, nil
}

type maintenanceRepo struct {
	store *Store
}

func (r *maintenanceRepo) Create(_ context.Context, blk *maintenance.Block) error {
	r.store.Blocks[blk.ID()] = blk
	return nil
}

func (r *maintenanceRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.store.Blocks[id]; !ok {
		return false, nil
	}
	delete(r.store.Blocks, id)
	return true, nil
}

func (r *maintenanceRepo) ListOccupying(_ context.Context, facilityID uuid.UUID, day time.Time) ([]*maintenance.Block, error) {
	var out []*maintenance.Block
	for _, blk := range r.store.Blocks {
		if blk.FacilityID() == facilityID && blk.TimeRange().Day().Equal(day) {
			out = append(out, blk)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeRange().Start().Before(out[j].TimeRange().Start())
	})
	return out, nil
}

type notificationRepo struct {
	store *Store
}

func (r *notificationRepo) CreateJob(_ context.Context, kind string, payload []byte, runAt time.Time) error {
	r.store.Jobs = append(r.store.Jobs, NotificationJob{Kind: kind, Payload: payload, RunAt: runAt})
	return nil
}
