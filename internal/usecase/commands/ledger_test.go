//go:build unit

package commands_test

import (
	"context"
	"testing"

	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCommands_AdjustCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("admin grants credits", func(t *testing.T) {
		e := newEnv()
		admin := e.addAdmin(t)
		member := e.addMember(t, 0)

		err := e.ledgerCommands().AdjustCredits(ctx, admin, commands.AdjustCreditsInput{
			AccountID: member.ID,
			Amount:    25,
			Memo:      "welcome grant",
		})
		require.NoError(t, err)
		assert.Equal(t, 25, e.store.BalanceOf(member.ID))

		entries := e.store.EntriesFor(member.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.ReasonAdminAdjustment, entries[0].Reason)
		assert.Equal(t, "welcome grant", entries[0].Memo)
		require.NotNil(t, entries[0].ActorID)
		assert.Equal(t, admin.ID, *entries[0].ActorID)
	})

	t.Run("admin withdraws up to the balance", func(t *testing.T) {
		e := newEnv()
		admin := e.addAdmin(t)
		member := e.addMember(t, 30)

		err := e.ledgerCommands().AdjustCredits(ctx, admin, commands.AdjustCreditsInput{
			AccountID: member.ID,
			Amount:    -30,
			Memo:      "account closure",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, e.store.BalanceOf(member.ID))
	})

	t.Run("withdrawal past zero is rejected", func(t *testing.T) {
		e := newEnv()
		admin := e.addAdmin(t)
		member := e.addMember(t, 10)

		err := e.ledgerCommands().AdjustCredits(ctx, admin, commands.AdjustCreditsInput{
			AccountID: member.ID,
			Amount:    -11,
			Memo:      "too deep",
		})
		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, 10, e.store.BalanceOf(member.ID))
	})

	t.Run("members may not adjust", func(t *testing.T) {
		e := newEnv()
		member := e.addMember(t, 0)

		err := e.ledgerCommands().AdjustCredits(ctx, member, commands.AdjustCreditsInput{
			AccountID: member.ID,
			Amount:    100,
			Memo:      "self serve",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown account is rejected", func(t *testing.T) {
		e := newEnv()
		admin := e.addAdmin(t)

		err := e.ledgerCommands().AdjustCredits(ctx, admin, commands.AdjustCreditsInput{
			AccountID: uuid.New(),
			Amount:    10,
			Memo:      "ghost",
		})
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}
