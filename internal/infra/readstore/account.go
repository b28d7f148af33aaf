package readstore

import (
	"context"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AccountReadStore struct {
	db db.DBTX
}

func NewAccountReadStore(dbtx db.DBTX) *AccountReadStore {
	return &AccountReadStore{db: dbtx}
}

const selectAccountSQL = `
SELECT id, email, display_name, password_hash, role, is_active
FROM accounts`

func (r *AccountReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	row := r.db.QueryRow(ctx, selectAccountSQL+" WHERE id = $1", id)
	return scanAccountSnapshot(row)
}

func (r *AccountReadStore) SnapshotByEmail(ctx context.Context, email string) (*shared.AccountSnapshot, error) {
	row := r.db.QueryRow(ctx, selectAccountSQL+" WHERE email = $1", email)
	return scanAccountSnapshot(row)
}

func scanAccountSnapshot(row pgx.Row) (*shared.AccountSnapshot, error) {
	var snap shared.AccountSnapshot
	var role string
	err := row.Scan(&snap.ID, &snap.Email, &snap.DisplayName, &snap.PasswordHash, &role, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(err, errs.ErrAccountNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find account", err)
	}
	snap.Role = account.Role(role)
	return &snap, nil
}
