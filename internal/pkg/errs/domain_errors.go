package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers map these to HTTP
// statuses; nothing below the handler layer knows about HTTP.
var (
	// Facility errors
	ErrUnknownFacility = errors.New("unknown facility")

	// Booking lifecycle errors
	ErrBookingNotFound        = errors.New("booking not found")
	ErrSlotConflict           = errors.New("time slot conflict")
	ErrInvalidTimeRange       = errors.New("invalid time range")
	ErrOutsideOperatingHours  = errors.New("outside operating hours")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrCheckInTooEarly        = errors.New("check-in not yet eligible")
	ErrCheckInExpired         = errors.New("check-in window expired")
	ErrNotBookingParticipant  = errors.New("actor is not a participant of the booking")
	ErrClaimWindowClosed      = errors.New("released booking is no longer claimable")

	// Ledger errors
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAccountNotFound     = errors.New("account not found")

	// Co-booking errors
	ErrInviteNotFound   = errors.New("invite not found")
	ErrDuplicateInvite  = errors.New("invitee already invited")
	ErrCapacityExceeded = errors.New("facility capacity exceeded")
	ErrInviteResolved   = errors.New("invite already resolved")

	// Maintenance errors
	ErrMaintenanceBlockNotFound = errors.New("maintenance block not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted for actor")

	// Infrastructure marker: callers may retry, the request itself was valid
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
