package repository

import (
	"context"
	"time"

	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InviteRepository struct {
	db db.DBTX
}

func NewInviteRepository(dbtx db.DBTX) *InviteRepository {
	return &InviteRepository{db: dbtx}
}

var _ shared.InviteRepository = (*InviteRepository)(nil)

const insertInviteSQL = `
INSERT INTO cobooking_invites (id, booking_id, invitee_id, status, invited_at)
VALUES ($1, $2, $3, $4, $5)`

func (r *InviteRepository) Create(ctx context.Context, inv *cobooking.Invite) error {
	_, err := r.db.Exec(ctx, insertInviteSQL,
		inv.ID(), inv.BookingID(), inv.InviteeID(), string(inv.Status()), inv.InvitedAt())
	if err != nil {
		kind := pgKind(err)
		if kind == infra.KindDuplicateKey {
			return errs.Mark(err, errs.ErrDuplicateInvite)
		}
		return infra.WrapRepoErr("failed to create invite", err, kind)
	}
	return nil
}

const selectInviteSQL = `
SELECT id, booking_id, invitee_id, status, invited_at, responded_at
FROM cobooking_invites`

func (r *InviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*cobooking.Invite, error) {
	row := r.db.QueryRow(ctx, selectInviteSQL+" WHERE id = $1", id)
	inv, err := scanInvite(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrInviteNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invite", err)
	}
	return inv, nil
}

func (r *InviteRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*cobooking.Invite, error) {
	rows, err := r.db.Query(ctx, selectInviteSQL+" WHERE booking_id = $1 ORDER BY invited_at", bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list invites", err)
	}
	defer rows.Close()

	var result []*cobooking.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan invite row", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invite rows", err)
	}
	return result, nil
}

const updateInviteStatusSQL = `
UPDATE cobooking_invites SET status = $1, responded_at = $2
WHERE id = $3 AND status = $4`

func (r *InviteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to cobooking.InviteStatus, respondedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, updateInviteStatusSQL,
		string(to), respondedAt, id, string(from))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update invite status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanInvite(row pgx.Row) (*cobooking.Invite, error) {
	var (
		id, bookingID, inviteeID uuid.UUID
		status                   string
		invitedAt                time.Time
		respondedAt              *time.Time
	)
	if err := row.Scan(&id, &bookingID, &inviteeID, &status, &invitedAt, &respondedAt); err != nil {
		return nil, err
	}
	return cobooking.Reconstruct(id, bookingID, inviteeID,
		cobooking.InviteStatus(status), invitedAt, respondedAt), nil
}
