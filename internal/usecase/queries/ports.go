package queries

import (
	"context"
	"time"

	"facility-booking/internal/domain/availability"

	"github.com/google/uuid"
)

type FacilityReadStore interface {
	List(ctx context.Context) ([]FacilityView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*FacilityView, error)
	// OccupanciesOn returns everything blocking the facility on the given
	// day, bookings and maintenance blocks alike.
	OccupanciesOn(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]availability.Occupancy, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]BookingView, error)
	ListAll(ctx context.Context, limit, offset int) ([]BookingView, error)
	// ListClaimable returns released bookings whose slot has not ended yet.
	ListClaimable(ctx context.Context, now time.Time) ([]BookingView, error)
}

type LedgerReadStore interface {
	Balance(ctx context.Context, accountID uuid.UUID) (int, error)
	History(ctx context.Context, accountID uuid.UUID) ([]LedgerEntryView, error)
}

type InviteReadStore interface {
	ListForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]InviteView, error)
}
