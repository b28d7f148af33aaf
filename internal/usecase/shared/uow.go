package shared

import (
	"context"
	"time"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/domain/maintenance"

	"github.com/google/uuid"
)

// UnitOfWork is the storage contract of the booking core. Every multi-record
// write runs inside Within so the conflict-check-then-reserve sequence and
// the co-booking ledger recompute are atomic. The core stays agnostic to the
// concrete engine.
type UnitOfWork interface {
	// Within runs fn in a read-committed transaction with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads exposes non-transactional reads for validation and queries.
	Reads() StoreReads
}

type Tx interface {
	Bookings() BookingRepository
	Invites() InviteRepository
	Ledger() LedgerRepository
	Maintenance() MaintenanceRepository
	Notifications() NotificationRepository
	Reads() StoreReads
	// LockFacilityDay serializes writers of one facility+day so two
	// concurrent overlapping requests cannot both pass the conflict check.
	LockFacilityDay(ctx context.Context, facilityID uuid.UUID, day time.Time) error
}

// StoreReads is the read surface shared by commands (validation) and the
// auth glue. The facility catalog is owned externally; it is read-only here.
type StoreReads interface {
	FacilityByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error)
	AccountByID(ctx context.Context, id uuid.UUID) (*AccountSnapshot, error)
	AccountByEmail(ctx context.Context, email string) (*AccountSnapshot, error)
}

// AccountSnapshot is the write-side view of an account, enough for
// authorization and credential checks without pulling in read models.
type AccountSnapshot struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         account.Role
	IsActive     bool
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus performs a state-checked transition: the row is updated
	// only if it is still in `from`. A false return means the caller lost a
	// race and should treat the transition as stale.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, resolvedAt *time.Time) (bool, error)
	// ListOccupying returns the conflict-relevant bookings of a facility day.
	ListOccupying(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]*booking.Booking, error)

	// Deadline monitor scans. All three re-derive due work from persisted
	// state so a restart loses nothing.
	ListConfirmedStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	ListUncheckedStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	ListCheckedInEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
}

type InviteRepository interface {
	Create(ctx context.Context, inv *cobooking.Invite) error
	FindByID(ctx context.Context, id uuid.UUID) (*cobooking.Invite, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*cobooking.Invite, error)
	// UpdateStatus mirrors BookingRepository.UpdateStatus for invites.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to cobooking.InviteStatus, respondedAt time.Time) (bool, error)
}

type LedgerRepository interface {
	// Append writes entries as one batch; entries are immutable thereafter.
	Append(ctx context.Context, entries ...ledger.Entry) error
	// BalanceOf sums the account's entries. Never a stored counter.
	BalanceOf(ctx context.Context, accountID uuid.UUID) (int, error)
	// NetPaidByAccount returns, per account, how much the account has paid
	// toward the given booking (debits minus refunds), for share recompute.
	NetPaidByAccount(ctx context.Context, bookingID uuid.UUID) (map[uuid.UUID]int, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, blk *maintenance.Block) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// ListOccupying returns the blocks of a facility day for conflict checks.
	ListOccupying(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]*maintenance.Block, error)
}

// NotificationRepository is a transactional outbox: the core never delivers
// messages itself, it records jobs an external worker picks up.
type NotificationRepository interface {
	CreateJob(ctx context.Context, kind string, payload []byte, runAt time.Time) error
}
