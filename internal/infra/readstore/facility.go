package readstore

import (
	"context"
	"fmt"
	"time"

	"facility-booking/internal/domain/availability"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FacilityReadStore struct {
	db db.DBTX
}

func NewFacilityReadStore(dbtx db.DBTX) *FacilityReadStore {
	return &FacilityReadStore{db: dbtx}
}

var _ queries.FacilityReadStore = (*FacilityReadStore)(nil)

const selectFacilitySQL = `
SELECT id, name, kind, capacity, credit_per_hour, open_min, close_min
FROM facilities`

func (r *FacilityReadStore) List(ctx context.Context) ([]queries.FacilityView, error) {
	rows, err := r.db.Query(ctx, selectFacilitySQL+" ORDER BY name")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list facilities", err)
	}
	defer rows.Close()

	var result []queries.FacilityView
	for rows.Next() {
		view, err := scanFacilityView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan facility row", err)
		}
		result = append(result, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate facility rows", err)
	}
	return result, nil
}

func (r *FacilityReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FacilityView, error) {
	row := r.db.QueryRow(ctx, selectFacilitySQL+" WHERE id = $1", id)
	view, err := scanFacilityView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrUnknownFacility)
		}
		return nil, infra.WrapRepoErr("failed to find facility", err)
	}
	return view, nil
}

// DomainByID rebuilds the facility aggregate for command validation.
func (r *FacilityReadStore) DomainByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	row := r.db.QueryRow(ctx, selectFacilitySQL+" WHERE id = $1", id)

	var (
		facID                             uuid.UUID
		name, kind                        string
		capacity, creditPerHour, open, cl int
	)
	if err := row.Scan(&facID, &name, &kind, &capacity, &creditPerHour, &open, &cl); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrUnknownFacility)
		}
		return nil, infra.WrapRepoErr("failed to load facility", err)
	}

	hours, err := facility.NewOperatingHours(open, cl)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored operating hours", err)
	}
	fac, err := facility.NewFacility(facID, name, facility.Kind(kind), capacity, creditPerHour, hours)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored facility", err)
	}
	return fac, nil
}

// OccupanciesOn unions occupying bookings and maintenance blocks for one
// facility day, which is exactly the input the free-slot computation needs.
func (r *FacilityReadStore) OccupanciesOn(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]availability.Occupancy, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, starts_at, ends_at, 'booking' AS source
FROM bookings
WHERE facility_id = $1 AND day = $2
  AND status IN ('confirmed', 'awaiting_checkin', 'checked_in')
UNION ALL
SELECT id, starts_at, ends_at, 'maintenance' AS source
FROM maintenance_blocks
WHERE facility_id = $1 AND day = $2
ORDER BY starts_at`, facilityID, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupancies", err)
	}
	defer rows.Close()

	var result []availability.Occupancy
	for rows.Next() {
		var (
			id               uuid.UUID
			startsAt, endsAt time.Time
			source           string
		)
		if err := rows.Scan(&id, &startsAt, &endsAt, &source); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy row", err)
		}
		timeRange, err := booking.NewTimeRange(startsAt.UTC(), endsAt.UTC())
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stored occupancy range", err)
		}
		kind := availability.OccupancyBooking
		if source == "maintenance" {
			kind = availability.OccupancyMaintenance
		}
		result = append(result, availability.Occupancy{Ref: id, Kind: kind, Range: timeRange})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupancy rows", err)
	}
	return result, nil
}

func scanFacilityView(row pgx.Row) (*queries.FacilityView, error) {
	var (
		id                                   uuid.UUID
		name, kind                           string
		capacity, creditPerHour, openM, clsM int
	)
	if err := row.Scan(&id, &name, &kind, &capacity, &creditPerHour, &openM, &clsM); err != nil {
		return nil, err
	}
	return &queries.FacilityView{
		ID:            id,
		Name:          name,
		Kind:          kind,
		Capacity:      capacity,
		CreditPerHour: creditPerHour,
		OpensAt:       minutesToClock(openM),
		ClosesAt:      minutesToClock(clsM),
	}, nil
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
