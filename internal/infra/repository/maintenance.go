package repository

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/maintenance"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type MaintenanceRepository struct {
	db db.DBTX
}

func NewMaintenanceRepository(dbtx db.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{db: dbtx}
}

var _ shared.MaintenanceRepository = (*MaintenanceRepository)(nil)

const insertBlockSQL = `
INSERT INTO maintenance_blocks (id, facility_id, starts_at, ends_at, day, reason, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *MaintenanceRepository) Create(ctx context.Context, blk *maintenance.Block) error {
	_, err := r.db.Exec(ctx, insertBlockSQL,
		blk.ID(), blk.FacilityID(),
		blk.TimeRange().Start(), blk.TimeRange().End(), blk.TimeRange().Day(),
		blk.Reason(), blk.CreatedBy(), blk.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create maintenance block", err, pgKind(err))
	}
	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM maintenance_blocks WHERE id = $1`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete maintenance block", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *MaintenanceRepository) ListOccupying(ctx context.Context, facilityID uuid.UUID, day time.Time) ([]*maintenance.Block, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, facility_id, starts_at, ends_at, reason, created_by, created_at
FROM maintenance_blocks
WHERE facility_id = $1 AND day = $2
ORDER BY starts_at`, facilityID, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list maintenance blocks", err)
	}
	defer rows.Close()

	var result []*maintenance.Block
	for rows.Next() {
		var (
			blockID, facilityRef, creator uuid.UUID
			startsAt, endsAt, createdAt   time.Time
			reason                        string
		)
		if err := rows.Scan(&blockID, &facilityRef, &startsAt, &endsAt, &reason, &creator, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan maintenance block row", err)
		}
		timeRange, err := booking.NewTimeRange(startsAt.UTC(), endsAt.UTC())
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stored maintenance range", err)
		}
		result = append(result, maintenance.Reconstruct(blockID, facilityRef, timeRange, reason, creator, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate maintenance block rows", err)
	}
	return result, nil
}
