package commands

import (
	"context"

	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdjustCreditsInput struct {
	AccountID uuid.UUID
	Amount    int // signed, negative withdraws credits
	Memo      string
}

type LedgerCommands interface {
	AdjustCredits(ctx context.Context, actor Actor, in AdjustCreditsInput) error
}

type ledgerCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewLedgerCommands(uow shared.UnitOfWork, clk clock.Clock) LedgerCommands {
	return &ledgerCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

// AdjustCredits grants or withdraws credits by appending an entry, never by
// editing history. Withdrawals may not push the balance negative.
func (c *ledgerCommandsImpl) AdjustCredits(ctx context.Context, actor Actor, in AdjustCreditsInput) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().AccountByID(ctx, in.AccountID); err != nil {
			return err
		}
		if in.Amount < 0 {
			balance, err := tx.Ledger().BalanceOf(ctx, in.AccountID)
			if err != nil {
				return err
			}
			if balance+in.Amount < 0 {
				return errs.ErrInsufficientCredits
			}
		}
		entry, err := ledger.NewAdjustment(in.AccountID, in.Amount, in.Memo, actor.ID, now)
		if err != nil {
			return err
		}
		return tx.Ledger().Append(ctx, entry)
	})
}
