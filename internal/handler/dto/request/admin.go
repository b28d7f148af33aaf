package request

import (
	"time"

	"github.com/google/uuid"
)

type AdjustCreditsRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
	Amount    int       `json:"amount" binding:"required"`
	Memo      string    `json:"memo" binding:"required"`
}

type CreateMaintenanceBlockRequest struct {
	FacilityID uuid.UUID `json:"facility_id" binding:"required"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
}
