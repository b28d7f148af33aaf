package cobooking

import (
	"github.com/google/uuid"
)

// SplitShares distributes a booking's total cost across the primary booker
// and the accepted co-bookers. Each co-booker owes ceil(total/n), capped at
// what is still unassigned; the primary absorbs the rounding remainder so the
// shares always sum exactly to total. With total 30 and three participants
// everyone owes 10. No share is ever negative: with a cheap booking and many
// acceptors the primary's share bottoms out at zero instead of turning into
// a payout funded by the co-bookers.
func SplitShares(totalCost int, primaryID uuid.UUID, acceptedIDs []uuid.UUID) map[uuid.UUID]int {
	shares := make(map[uuid.UUID]int, len(acceptedIDs)+1)
	n := len(acceptedIDs) + 1

	coShare := (totalCost + n - 1) / n
	remaining := totalCost
	for _, id := range acceptedIDs {
		share := coShare
		if share > remaining {
			share = remaining
		}
		shares[id] = share
		remaining -= share
	}
	shares[primaryID] = remaining
	return shares
}
