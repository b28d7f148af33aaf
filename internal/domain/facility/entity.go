package facility

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind           = errors.New("invalid facility kind")
	ErrInvalidCapacity       = errors.New("capacity must be positive")
	ErrInvalidCreditRate     = errors.New("credit rate must be positive")
	ErrInvalidOperatingHours = errors.New("invalid operating hours")
)

type Kind string

const (
	KindRoom  Kind = "room"
	KindLab   Kind = "lab"
	KindCourt Kind = "court"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindRoom, KindLab, KindCourt:
		return true
	default:
		return false
	}
}

// OperatingHours is a daily open window expressed as minutes from midnight.
// The window is half-open: a facility open 08:00-22:00 accepts a booking
// ending exactly at 22:00.
type OperatingHours struct {
	openMin  int
	closeMin int
}

func NewOperatingHours(openMin, closeMin int) (OperatingHours, error) {
	if openMin < 0 || closeMin > 24*60 || openMin >= closeMin {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	return OperatingHours{openMin: openMin, closeMin: closeMin}, nil
}

func (h OperatingHours) OpenMinutes() int  { return h.openMin }
func (h OperatingHours) CloseMinutes() int { return h.closeMin }

// WindowOn anchors the operating window to a calendar day. The day is taken
// at UTC midnight.
func (h OperatingHours) WindowOn(day time.Time) (start, end time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(h.openMin) * time.Minute),
		midnight.Add(time.Duration(h.closeMin) * time.Minute)
}

func (h OperatingHours) Contains(start, end time.Time) bool {
	dayStart, dayEnd := h.WindowOn(start)
	return !start.Before(dayStart) && !end.After(dayEnd)
}

func (h OperatingHours) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", h.openMin/60, h.openMin%60, h.closeMin/60, h.closeMin%60)
}

// Facility is catalog data owned by the admin CRUD surface; the booking core
// treats it as read-only.
type Facility struct {
	id            uuid.UUID
	name          string
	kind          Kind
	capacity      int
	creditPerHour int
	hours         OperatingHours
}

func NewFacility(id uuid.UUID, name string, kind Kind, capacity, creditPerHour int, hours OperatingHours) (*Facility, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if creditPerHour <= 0 {
		return nil, ErrInvalidCreditRate
	}
	return &Facility{
		id:            id,
		name:          name,
		kind:          kind,
		capacity:      capacity,
		creditPerHour: creditPerHour,
		hours:         hours,
	}, nil
}

func (f *Facility) ID() uuid.UUID         { return f.id }
func (f *Facility) Name() string          { return f.name }
func (f *Facility) Kind() Kind            { return f.kind }
func (f *Facility) Capacity() int         { return f.capacity }
func (f *Facility) CreditPerHour() int    { return f.creditPerHour }
func (f *Facility) Hours() OperatingHours { return f.hours }
