package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FacilityID  uuid.UUID   `json:"facility_id" binding:"required"`
	StartsAt    time.Time   `json:"starts_at" binding:"required"`
	EndsAt      time.Time   `json:"ends_at" binding:"required"`
	Kind        string      `json:"kind" binding:"required,oneof=prebooked adhoc"`
	CoBookerIDs []uuid.UUID `json:"co_booker_ids"`
}
