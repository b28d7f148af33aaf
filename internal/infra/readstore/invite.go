package readstore

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type InviteReadStore struct {
	db db.DBTX
}

func NewInviteReadStore(dbtx db.DBTX) *InviteReadStore {
	return &InviteReadStore{db: dbtx}
}

var _ queries.InviteReadStore = (*InviteReadStore)(nil)

func (r *InviteReadStore) ListForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]queries.InviteView, error) {
	rows, err := r.db.Query(ctx, `
SELECT i.id, i.booking_id, f.name, b.starts_at, b.ends_at,
       i.invitee_id, i.status, i.invited_at, i.responded_at
FROM cobooking_invites i
JOIN bookings b ON b.id = i.booking_id
JOIN facilities f ON f.id = b.facility_id
WHERE i.invitee_id = $1
ORDER BY i.invited_at DESC`, inviteeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list invites for invitee", err)
	}
	defer rows.Close()

	var result []queries.InviteView
	for rows.Next() {
		var v queries.InviteView
		err := rows.Scan(&v.ID, &v.BookingID, &v.FacilityName, &v.StartsAt, &v.EndsAt,
			&v.InviteeID, &v.Status, &v.InvitedAt, &v.RespondedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan invite row", err)
		}
		v.StartsAt = v.StartsAt.UTC()
		v.EndsAt = v.EndsAt.UTC()
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invite rows", err)
	}
	return result, nil
}
