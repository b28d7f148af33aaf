package response

import (
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type FacilityResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Capacity      int       `json:"capacity"`
	CreditPerHour int       `json:"credit_per_hour"`
	OpensAt       string    `json:"opens_at"`
	ClosesAt      string    `json:"closes_at"`
}

func FromFacilityView(v *queries.FacilityView) *FacilityResponse {
	return &FacilityResponse{
		ID:            v.ID,
		Name:          v.Name,
		Kind:          v.Kind,
		Capacity:      v.Capacity,
		CreditPerHour: v.CreditPerHour,
		OpensAt:       v.OpensAt,
		ClosesAt:      v.ClosesAt,
	}
}

func FromFacilityViews(views []queries.FacilityView) []*FacilityResponse {
	result := make([]*FacilityResponse, len(views))
	for i := range views {
		result[i] = FromFacilityView(&views[i])
	}
	return result
}

type FreeSlotResponse struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type AvailabilityResponse struct {
	FacilityID uuid.UUID          `json:"facility_id"`
	Day        string             `json:"day"`
	FreeSlots  []FreeSlotResponse `json:"free_slots"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]FreeSlotResponse, len(v.FreeSlots))
	for i, s := range v.FreeSlots {
		slots[i] = FreeSlotResponse{StartsAt: s.StartsAt, EndsAt: s.EndsAt}
	}
	return &AvailabilityResponse{
		FacilityID: v.FacilityID,
		Day:        v.Day.Format("2006-01-02"),
		FreeSlots:  slots,
	}
}
