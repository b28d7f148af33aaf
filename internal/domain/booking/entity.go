package booking

import (
	"errors"
	"time"

	"facility-booking/internal/domain/facility"

	"github.com/google/uuid"
)

var (
	ErrOutsideOperatingHours = errors.New("range outside facility operating hours")
	ErrAdHocNotToday         = errors.New("ad-hoc booking must be for the current day")
	ErrPastStart             = errors.New("start time is in the past")
	ErrInvalidTransition     = errors.New("transition not permitted from current state")
	ErrCheckInTooEarly       = errors.New("check-in attempted before eligibility window")
	ErrCheckInExpired        = errors.New("check-in deadline has passed")
	ErrInvalidKindValue      = errors.New("invalid booking kind")
)

// Booking is the lifecycle aggregate. State changes only go through the
// transition methods so an invalid move is an error, never silent data.
type Booking struct {
	id         uuid.UUID
	facilityID uuid.UUID
	accountID  uuid.UUID
	timeRange  TimeRange
	kind       Kind
	creditCost int
	status     Status
	createdAt  time.Time
	resolvedAt *time.Time
}

// New validates the request against the facility catalog data and prices the
// slot. Prebooked slots start life confirmed; ad-hoc slots start now, so they
// go straight to the check-in window.
func New(fac *facility.Facility, accountID uuid.UUID, r TimeRange, kind Kind, now time.Time) (*Booking, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKindValue
	}
	if !fac.Hours().Contains(r.Start(), r.End()) {
		return nil, ErrOutsideOperatingHours
	}

	now = now.UTC()
	switch kind {
	case KindAdHoc:
		if !sameDay(r.Start(), now) {
			return nil, ErrAdHocNotToday
		}
		if !r.End().After(now) {
			return nil, ErrPastStart
		}
	default:
		if !r.Start().After(now) {
			return nil, ErrPastStart
		}
	}

	status := StatusConfirmed
	if kind == KindAdHoc {
		status = StatusAwaitingCheckIn
	}

	return &Booking{
		id:         uuid.New(),
		facilityID: fac.ID(),
		accountID:  accountID,
		timeRange:  r,
		kind:       kind,
		creditCost: CostCredits(fac.CreditPerHour(), r),
		status:     status,
		createdAt:  now,
	}, nil
}

func Reconstruct(
	id, facilityID, accountID uuid.UUID,
	r TimeRange,
	kind Kind,
	creditCost int,
	status Status,
	createdAt time.Time,
	resolvedAt *time.Time,
) *Booking {
	return &Booking{
		id:         id,
		facilityID: facilityID,
		accountID:  accountID,
		timeRange:  r,
		kind:       kind,
		creditCost: creditCost,
		status:     status,
		createdAt:  createdAt,
		resolvedAt: resolvedAt,
	}
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) FacilityID() uuid.UUID  { return b.facilityID }
func (b *Booking) AccountID() uuid.UUID   { return b.accountID }
func (b *Booking) TimeRange() TimeRange   { return b.timeRange }
func (b *Booking) Kind() Kind             { return b.kind }
func (b *Booking) CreditCost() int        { return b.creditCost }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) ResolvedAt() *time.Time { return b.resolvedAt }

// CheckInDeadline is derived, never stored: start plus the policy grace.
func (b *Booking) CheckInDeadline(grace time.Duration) time.Time {
	return b.timeRange.Start().Add(grace)
}

// BeginCheckInWindow moves a confirmed booking into awaiting_checkin once the
// start time has been reached. The deadline monitor drives this.
func (b *Booking) BeginCheckInWindow(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if now.Before(b.timeRange.Start()) {
		return ErrInvalidTransition
	}
	b.status = StatusAwaitingCheckIn
	return nil
}

// CheckIn confirms presence. Eligibility opens `grace` before the official
// start time and closes `grace` after it.
func (b *Booking) CheckIn(now time.Time, grace time.Duration) error {
	if b.status != StatusConfirmed && b.status != StatusAwaitingCheckIn {
		return ErrInvalidTransition
	}
	if now.Before(b.timeRange.Start().Add(-grace)) {
		return ErrCheckInTooEarly
	}
	if now.After(b.CheckInDeadline(grace)) {
		return ErrCheckInExpired
	}
	b.status = StatusCheckedIn
	return nil
}

// ReleaseNoShow forfeits an unclaimed booking after the deadline. The credit
// cost is not refunded; it funds the claim workflow.
func (b *Booking) ReleaseNoShow(now time.Time) error {
	if b.status != StatusConfirmed && b.status != StatusAwaitingCheckIn {
		return ErrInvalidTransition
	}
	b.status = StatusReleased
	t := now.UTC()
	b.resolvedAt = &t
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusCheckedIn {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	t := now.UTC()
	b.resolvedAt = &t
	return nil
}

// Cancel resolves the booking by user request. It reports whether the
// cancellation happened before the start time, which decides refund
// eligibility; the refund fraction itself is policy, not domain.
func (b *Booking) Cancel(now time.Time) (refundEligible bool, err error) {
	if b.status != StatusConfirmed && b.status != StatusAwaitingCheckIn {
		return false, ErrInvalidTransition
	}
	b.status = StatusCancelled
	t := now.UTC()
	b.resolvedAt = &t
	return now.Before(b.timeRange.Start()), nil
}
