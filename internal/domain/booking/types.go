package booking

type Status string

const (
	// StatusConfirmed is a future booking waiting for its start time.
	StatusConfirmed Status = "confirmed"
	// StatusAwaitingCheckIn starts at the booked start time and lasts until
	// the check-in deadline.
	StatusAwaitingCheckIn Status = "awaiting_checkin"
	StatusCheckedIn       Status = "checked_in"
	StatusCompleted       Status = "completed"
	// StatusReleased is a no-show reclaim; the slot returns to the claimable pool.
	StatusReleased  Status = "released"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusAwaitingCheckIn, StatusCheckedIn,
		StatusCompleted, StatusReleased, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusReleased, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether a booking in this state blocks the slot for
// conflict purposes.
func (s Status) Occupies() bool {
	switch s {
	case StatusConfirmed, StatusAwaitingCheckIn, StatusCheckedIn:
		return true
	default:
		return false
	}
}

type Kind string

const (
	// KindPrebooked is reserved ahead of time.
	KindPrebooked Kind = "prebooked"
	// KindAdHoc is booked for the current day and enters the check-in window
	// immediately.
	KindAdHoc Kind = "adhoc"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindPrebooked, KindAdHoc:
		return true
	default:
		return false
	}
}
