package response

import (
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	FacilityID      uuid.UUID  `json:"facility_id"`
	FacilityName    string     `json:"facility_name"`
	AccountID       uuid.UUID  `json:"account_id"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	CreditCost      int        `json:"credit_cost"`
	CheckInDeadline time.Time  `json:"check_in_deadline"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		FacilityID:      v.FacilityID,
		FacilityName:    v.FacilityName,
		AccountID:       v.AccountID,
		StartsAt:        v.StartsAt,
		EndsAt:          v.EndsAt,
		Kind:            v.Kind,
		Status:          v.Status,
		CreditCost:      v.CreditCost,
		CheckInDeadline: v.CheckInDeadline,
		CreatedAt:       v.CreatedAt,
		ResolvedAt:      v.ResolvedAt,
	}
}

func FromBookingViews(views []queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i := range views {
		result[i] = FromBookingView(&views[i])
	}
	return result
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
