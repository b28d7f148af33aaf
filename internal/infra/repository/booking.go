package repository

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

var _ shared.BookingRepository = (*BookingRepository)(nil)

const insertBookingSQL = `
INSERT INTO bookings (id, facility_id, account_id, starts_at, ends_at, day, kind, status, credit_cost, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(), b.FacilityID(), b.AccountID(),
		b.TimeRange().Start(), b.TimeRange().End(), b.TimeRange().Day(),
		b.Kind().String(), b.Status().String(), b.CreditCost(), b.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err, pgKind(err))
	}
	return nil
}

const selectBookingSQL = `
SELECT b.id, b.facility_id, b.account_id, b.starts_at, b.ends_at, b.kind, b.status, b.credit_cost, b.created_at, b.resolved_at
FROM bookings b`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, selectBookingSQL+" WHERE b.id = $1", id)
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

const updateBookingStatusSQL = `
UPDATE bookings SET status = $1, resolved_at = $2
WHERE id = $3 AND status = $4`

// UpdateStatus applies the transition only when the row is still in the
// expected state. A false return means someone else moved it first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, resolvedAt *time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL,
		to.String(), pgconv.TimePtrToPg(resolvedAt), id, from.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) ListOccupying(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, selectBookingSQL+`
 WHERE b.facility_id = $1 AND b.day = $2
   AND b.status IN ('confirmed', 'awaiting_checkin', 'checked_in')
 ORDER BY b.starts_at`, facilityID, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupying bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func (r *BookingRepository) ListConfirmedStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(ctx, `
SELECT id FROM bookings
WHERE status = 'confirmed' AND starts_at <= $1
ORDER BY starts_at LIMIT $2`, cutoff, limit)
}

func (r *BookingRepository) ListUncheckedStartedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(ctx, `
SELECT id FROM bookings
WHERE status IN ('confirmed', 'awaiting_checkin') AND starts_at <= $1
ORDER BY starts_at LIMIT $2`, cutoff, limit)
}

func (r *BookingRepository) ListCheckedInEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	return r.listIDs(ctx, `
SELECT id FROM bookings
WHERE status = 'checked_in' AND ends_at <= $1
ORDER BY ends_at LIMIT $2`, cutoff, limit)
}

func (r *BookingRepository) listIDs(ctx context.Context, query string, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking ids", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking ids", err)
	}
	return ids, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, facilityID, accountID uuid.UUID
		startsAt, endsAt          time.Time
		kind, status              string
		creditCost                int
		createdAt                 time.Time
		resolvedAt                *time.Time
	)
	err := row.Scan(&id, &facilityID, &accountID, &startsAt, &endsAt, &kind, &status,
		&creditCost, &createdAt, &resolvedAt)
	if err != nil {
		return nil, err
	}

	timeRange, err := booking.NewTimeRange(startsAt.UTC(), endsAt.UTC())
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(id, facilityID, accountID, timeRange,
		booking.Kind(kind), creditCost, booking.Status(status), createdAt, resolvedAt), nil
}
