package repository

import (
	"context"

	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// LedgerRepository is append-only by contract: no update or delete
// statements exist here, and the balance is always derived by summation.
type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(dbtx db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: dbtx}
}

var _ shared.LedgerRepository = (*LedgerRepository)(nil)

const insertEntrySQL = `
INSERT INTO ledger_entries (id, account_id, amount, reason, memo, booking_id, actor_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *LedgerRepository) Append(ctx context.Context, entries ...ledger.Entry) error {
	for _, e := range entries {
		_, err := r.db.Exec(ctx, insertEntrySQL,
			e.ID, e.AccountID, e.Amount, string(e.Reason), e.Memo,
			pgconv.UUIDPtrToPg(e.BookingID), pgconv.UUIDPtrToPg(e.ActorID), e.CreatedAt)
		if err != nil {
			return infra.WrapRepoErr("failed to append ledger entry", err, pgKind(err))
		}
	}
	return nil
}

func (r *LedgerRepository) BalanceOf(ctx context.Context, accountID uuid.UUID) (int, error) {
	var balance int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`,
		accountID).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum ledger balance", err)
	}
	return balance, nil
}

// NetPaidByAccount reports, per account, the net amount paid toward one
// booking: debits minus refunds, as a positive number.
func (r *LedgerRepository) NetPaidByAccount(ctx context.Context, bookingID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
SELECT account_id, -SUM(amount)
FROM ledger_entries
WHERE booking_id = $1
GROUP BY account_id`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate booking payments", err)
	}
	defer rows.Close()

	paid := make(map[uuid.UUID]int)
	for rows.Next() {
		var accountID uuid.UUID
		var net int
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		paid[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return paid, nil
}
