package response

import (
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Balance   int       `json:"balance"`
}

type LedgerEntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Amount    int        `json:"amount"`
	Reason    string     `json:"reason"`
	Memo      string     `json:"memo,omitempty"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromLedgerEntryViews(views []queries.LedgerEntryView) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(views))
	for i, v := range views {
		result[i] = &LedgerEntryResponse{
			ID:        v.ID,
			Amount:    v.Amount,
			Reason:    v.Reason,
			Memo:      v.Memo,
			BookingID: v.BookingID,
			ActorID:   v.ActorID,
			CreatedAt: v.CreatedAt,
		}
	}
	return result
}
