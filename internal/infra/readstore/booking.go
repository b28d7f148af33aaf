package readstore

import (
	"context"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

const selectBookingViewSQL = `
SELECT b.id, b.facility_id, f.name, b.account_id, b.starts_at, b.ends_at,
       b.kind, b.status, b.credit_cost, b.created_at, b.resolved_at
FROM bookings b
JOIN facilities f ON f.id = b.facility_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, selectBookingViewSQL+" WHERE b.id = $1", id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]queries.BookingView, error) {
	return r.list(ctx, selectBookingViewSQL+`
 WHERE b.account_id = $1
 ORDER BY b.starts_at DESC`, accountID)
}

func (r *BookingReadStore) ListAll(ctx context.Context, limit, offset int) ([]queries.BookingView, error) {
	return r.list(ctx, selectBookingViewSQL+`
 ORDER BY b.starts_at DESC
 LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *BookingReadStore) ListClaimable(ctx context.Context, now time.Time) ([]queries.BookingView, error) {
	return r.list(ctx, selectBookingViewSQL+`
 WHERE b.status = 'released' AND b.ends_at > $1
 ORDER BY b.ends_at`, now)
}

func (r *BookingReadStore) list(ctx context.Context, query string, args ...any) ([]queries.BookingView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking views", err)
	}
	defer rows.Close()

	var result []queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view row", err)
		}
		result = append(result, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking view rows", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(&v.ID, &v.FacilityID, &v.FacilityName, &v.AccountID,
		&v.StartsAt, &v.EndsAt, &v.Kind, &v.Status, &v.CreditCost,
		&v.CreatedAt, &v.ResolvedAt)
	if err != nil {
		return nil, err
	}
	v.StartsAt = v.StartsAt.UTC()
	v.EndsAt = v.EndsAt.UTC()
	return &v, nil
}
