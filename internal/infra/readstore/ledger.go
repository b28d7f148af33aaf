package readstore

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type LedgerReadStore struct {
	db db.DBTX
}

func NewLedgerReadStore(dbtx db.DBTX) *LedgerReadStore {
	return &LedgerReadStore{db: dbtx}
}

var _ queries.LedgerReadStore = (*LedgerReadStore)(nil)

func (r *LedgerReadStore) Balance(ctx context.Context, accountID uuid.UUID) (int, error) {
	var balance int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`,
		accountID).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to read balance", err)
	}
	return balance, nil
}

func (r *LedgerReadStore) History(ctx context.Context, accountID uuid.UUID) ([]queries.LedgerEntryView, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, amount, reason, memo, booking_id, actor_id, created_at
FROM ledger_entries
WHERE account_id = $1
ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger history", err)
	}
	defer rows.Close()

	var result []queries.LedgerEntryView
	for rows.Next() {
		var v queries.LedgerEntryView
		if err := rows.Scan(&v.ID, &v.Amount, &v.Reason, &v.Memo, &v.BookingID, &v.ActorID, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ledger row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ledger rows", err)
	}
	return result, nil
}
