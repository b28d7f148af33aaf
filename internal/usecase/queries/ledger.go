package queries

import (
	"context"

	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type LedgerQueries interface {
	// Balance is derived by summing entries; admins may read any account.
	Balance(ctx context.Context, actor commands.Actor, accountID uuid.UUID) (*BalanceView, error)
	History(ctx context.Context, actor commands.Actor, accountID uuid.UUID) ([]LedgerEntryView, error)
}

type ledgerQueriesImpl struct {
	readStore LedgerReadStore
}

func NewLedgerQueries(readStore LedgerReadStore) LedgerQueries {
	return &ledgerQueriesImpl{readStore: readStore}
}

func (q *ledgerQueriesImpl) Balance(ctx context.Context, actor commands.Actor, accountID uuid.UUID) (*BalanceView, error) {
	if accountID != actor.ID && !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	balance, err := q.readStore.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &BalanceView{AccountID: accountID, Balance: balance}, nil
}

func (q *ledgerQueriesImpl) History(ctx context.Context, actor commands.Actor, accountID uuid.UUID) ([]LedgerEntryView, error) {
	if accountID != actor.ID && !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return q.readStore.History(ctx, accountID)
}
