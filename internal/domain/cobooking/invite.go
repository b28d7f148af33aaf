package cobooking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyResolved = errors.New("invite already resolved")
	ErrSelfInvite      = errors.New("cannot invite the primary booker")
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

func (s InviteStatus) IsValid() bool {
	switch s {
	case InvitePending, InviteAccepted, InviteDeclined:
		return true
	default:
		return false
	}
}

// Invite attaches one invitee to a booking. An invitee appears at most once
// per booking; the storage layer enforces that with a unique key, the
// coordinator re-checks it for a clean domain error.
type Invite struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	inviteeID   uuid.UUID
	status      InviteStatus
	invitedAt   time.Time
	respondedAt *time.Time
}

func NewInvite(bookingID, primaryID, inviteeID uuid.UUID, now time.Time) (*Invite, error) {
	if inviteeID == primaryID {
		return nil, ErrSelfInvite
	}
	return &Invite{
		id:        uuid.New(),
		bookingID: bookingID,
		inviteeID: inviteeID,
		status:    InvitePending,
		invitedAt: now.UTC(),
	}, nil
}

func Reconstruct(id, bookingID, inviteeID uuid.UUID, status InviteStatus, invitedAt time.Time, respondedAt *time.Time) *Invite {
	return &Invite{
		id:          id,
		bookingID:   bookingID,
		inviteeID:   inviteeID,
		status:      status,
		invitedAt:   invitedAt,
		respondedAt: respondedAt,
	}
}

func (i *Invite) ID() uuid.UUID           { return i.id }
func (i *Invite) BookingID() uuid.UUID    { return i.bookingID }
func (i *Invite) InviteeID() uuid.UUID    { return i.inviteeID }
func (i *Invite) Status() InviteStatus    { return i.status }
func (i *Invite) InvitedAt() time.Time    { return i.invitedAt }
func (i *Invite) RespondedAt() *time.Time { return i.respondedAt }

func (i *Invite) Accept(now time.Time) error {
	return i.resolve(InviteAccepted, now)
}

func (i *Invite) Decline(now time.Time) error {
	return i.resolve(InviteDeclined, now)
}

func (i *Invite) resolve(to InviteStatus, now time.Time) error {
	if i.status != InvitePending {
		return ErrAlreadyResolved
	}
	i.status = to
	t := now.UTC()
	i.respondedAt = &t
	return nil
}
