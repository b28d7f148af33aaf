//go:build unit

package cobooking_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/cobooking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShares(t *testing.T) {
	primary := uuid.New()

	cases := []struct {
		name      string
		total     int
		accepted  int
		coShare   int
		primShare int
	}{
		{name: "even three-way split", total: 30, accepted: 2, coShare: 10, primShare: 10},
		{name: "no co-bookers keeps full cost on primary", total: 30, accepted: 0, primShare: 30},
		{name: "rounding remainder lands on primary", total: 20, accepted: 2, coShare: 7, primShare: 6},
		{name: "two-way split rounds the co-booker up", total: 25, accepted: 1, coShare: 13, primShare: 12},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			accepted := make([]uuid.UUID, c.accepted)
			for i := range accepted {
				accepted[i] = uuid.New()
			}

			shares := cobooking.SplitShares(c.total, primary, accepted)

			require.Len(t, shares, c.accepted+1)
			sum := 0
			for _, s := range shares {
				sum += s
			}
			assert.Equal(t, c.total, sum, "shares must sum to total cost")
			assert.Equal(t, c.primShare, shares[primary])
			for _, id := range accepted {
				assert.Equal(t, c.coShare, shares[id])
			}
		})
	}
}

func TestSplitShares_CheapBookingManyAcceptors(t *testing.T) {
	primary := uuid.New()
	accepted := make([]uuid.UUID, 7)
	for i := range accepted {
		accepted[i] = uuid.New()
	}

	// ceil(10/8) = 2 per co-booker would assign 14; the cap stops the
	// running sum at 10 and the primary's share bottoms out at zero.
	shares := cobooking.SplitShares(10, primary, accepted)

	sum := 0
	for id, s := range shares {
		assert.GreaterOrEqual(t, s, 0, "share for %s must not be negative", id)
		sum += s
	}
	assert.Equal(t, 10, sum, "shares must sum to total cost")
	assert.Equal(t, 0, shares[primary])
}

func TestInvite(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	bookingID, primary := uuid.New(), uuid.New()

	t.Run("primary cannot invite themselves", func(t *testing.T) {
		_, err := cobooking.NewInvite(bookingID, primary, primary, now)
		require.ErrorIs(t, err, cobooking.ErrSelfInvite)
	})

	t.Run("accept resolves once", func(t *testing.T) {
		inv, err := cobooking.NewInvite(bookingID, primary, uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, cobooking.InvitePending, inv.Status())

		require.NoError(t, inv.Accept(now.Add(time.Minute)))
		assert.Equal(t, cobooking.InviteAccepted, inv.Status())
		require.NotNil(t, inv.RespondedAt())

		require.ErrorIs(t, inv.Decline(now.Add(2*time.Minute)), cobooking.ErrAlreadyResolved)
	})

	t.Run("declines have no further effect", func(t *testing.T) {
		inv, err := cobooking.NewInvite(bookingID, primary, uuid.New(), now)
		require.NoError(t, err)

		require.NoError(t, inv.Decline(now))
		require.ErrorIs(t, inv.Accept(now), cobooking.ErrAlreadyResolved)
	})
}
