package queries

import (
	"time"

	"github.com/google/uuid"
)

// Views are flat read models shaped for the HTTP layer. They are produced
// by the read store from SQL directly, bypassing the aggregates.

type FacilityView struct {
	ID            uuid.UUID
	Name          string
	Kind          string
	Capacity      int
	CreditPerHour int
	OpensAt       string // "HH:MM"
	ClosesAt      string
}

type BookingView struct {
	ID              uuid.UUID
	FacilityID      uuid.UUID
	FacilityName    string
	AccountID       uuid.UUID
	StartsAt        time.Time
	EndsAt          time.Time
	Kind            string
	Status          string
	CreditCost      int
	CheckInDeadline time.Time
	CreatedAt       time.Time
	ResolvedAt      *time.Time
}

type FreeSlotView struct {
	StartsAt time.Time
	EndsAt   time.Time
}

type AvailabilityView struct {
	FacilityID uuid.UUID
	Day        time.Time
	FreeSlots  []FreeSlotView
}

type LedgerEntryView struct {
	ID        uuid.UUID
	Amount    int
	Reason    string
	Memo      string
	BookingID *uuid.UUID
	ActorID   *uuid.UUID
	CreatedAt time.Time
}

type BalanceView struct {
	AccountID uuid.UUID
	Balance   int
}

type InviteView struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	FacilityName string
	StartsAt     time.Time
	EndsAt       time.Time
	InviteeID    uuid.UUID
	Status       string
	InvitedAt    time.Time
	RespondedAt  *time.Time
}
