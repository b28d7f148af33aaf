package response

import (
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type InviteResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookingID    uuid.UUID  `json:"booking_id"`
	FacilityName string     `json:"facility_name"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       time.Time  `json:"ends_at"`
	Status       string     `json:"status"`
	InvitedAt    time.Time  `json:"invited_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func FromInviteViews(views []queries.InviteView) []*InviteResponse {
	result := make([]*InviteResponse, len(views))
	for i, v := range views {
		result[i] = &InviteResponse{
			ID:           v.ID,
			BookingID:    v.BookingID,
			FacilityName: v.FacilityName,
			StartsAt:     v.StartsAt,
			EndsAt:       v.EndsAt,
			Status:       v.Status,
			InvitedAt:    v.InvitedAt,
			RespondedAt:  v.RespondedAt,
		}
	}
	return result
}
