package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount = errors.New("ledger amount must be positive")
	ErrInvalidReason     = errors.New("invalid ledger reason")
)

// Reason classifies every credit movement so the ledger reads as an audit
// trail, not just numbers.
type Reason string

const (
	ReasonBookingDebit         Reason = "booking_debit"
	ReasonCancellationRefund   Reason = "cancellation_refund"
	ReasonCoBookingShareDebit  Reason = "cobooking_share_debit"
	ReasonCoBookingShareRefund Reason = "cobooking_share_refund"
	ReasonClaimDebit           Reason = "claim_debit"
	ReasonAdminAdjustment      Reason = "admin_adjustment"
)

func (r Reason) IsValid() bool {
	switch r {
	case ReasonBookingDebit, ReasonCancellationRefund, ReasonCoBookingShareDebit,
		ReasonCoBookingShareRefund, ReasonClaimDebit, ReasonAdminAdjustment:
		return true
	default:
		return false
	}
}

// Entry is one immutable signed movement. Negative amounts are debits.
// Entries are append-only: nothing edits or deletes them, and an account's
// balance is always the sum of its entries.
type Entry struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Amount    int
	Reason    Reason
	// Memo carries the free-text reason an admin typed for an adjustment.
	Memo      string
	BookingID *uuid.UUID
	// ActorID is nil for system-driven movements, set for admin adjustments.
	ActorID   *uuid.UUID
	CreatedAt time.Time
}

func NewDebit(accountID uuid.UUID, amount int, reason Reason, bookingID, actorID *uuid.UUID, now time.Time) (Entry, error) {
	return newEntry(accountID, -amount, amount, reason, "", bookingID, actorID, now)
}

func NewCredit(accountID uuid.UUID, amount int, reason Reason, bookingID, actorID *uuid.UUID, now time.Time) (Entry, error) {
	return newEntry(accountID, amount, amount, reason, "", bookingID, actorID, now)
}

// NewAdjustment records an admin credit movement with a free-text memo.
// The signed amount may be positive (grant) or negative (deduction).
func NewAdjustment(accountID uuid.UUID, signed int, memo string, actorID uuid.UUID, now time.Time) (Entry, error) {
	magnitude := signed
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return newEntry(accountID, signed, magnitude, ReasonAdminAdjustment, memo, nil, &actorID, now)
}

func newEntry(accountID uuid.UUID, signed, magnitude int, reason Reason, memo string, bookingID, actorID *uuid.UUID, now time.Time) (Entry, error) {
	if magnitude <= 0 {
		return Entry{}, ErrNonPositiveAmount
	}
	if !reason.IsValid() {
		return Entry{}, ErrInvalidReason
	}
	return Entry{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    signed,
		Reason:    reason,
		Memo:      memo,
		BookingID: bookingID,
		ActorID:   actorID,
		CreatedAt: now.UTC(),
	}, nil
}
