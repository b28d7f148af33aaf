package maintenance

import (
	"errors"
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var ErrEmptyReason = errors.New("maintenance reason must not be empty")

// Block takes a facility out of service for a time range. For conflict
// purposes it behaves exactly like a confirmed booking. Immutable once
// created; admins can only delete it.
type Block struct {
	id         uuid.UUID
	facilityID uuid.UUID
	timeRange  booking.TimeRange
	reason     string
	createdBy  uuid.UUID
	createdAt  time.Time
}

func NewBlock(facilityID uuid.UUID, r booking.TimeRange, reason string, createdBy uuid.UUID, now time.Time) (*Block, error) {
	if reason == "" {
		return nil, ErrEmptyReason
	}
	return &Block{
		id:         uuid.New(),
		facilityID: facilityID,
		timeRange:  r,
		reason:     reason,
		createdBy:  createdBy,
		createdAt:  now.UTC(),
	}, nil
}

func Reconstruct(id, facilityID uuid.UUID, r booking.TimeRange, reason string, createdBy uuid.UUID, createdAt time.Time) *Block {
	return &Block{
		id:         id,
		facilityID: facilityID,
		timeRange:  r,
		reason:     reason,
		createdBy:  createdBy,
		createdAt:  createdAt,
	}
}

func (b *Block) ID() uuid.UUID                { return b.id }
func (b *Block) FacilityID() uuid.UUID        { return b.facilityID }
func (b *Block) TimeRange() booking.TimeRange { return b.timeRange }
func (b *Block) Reason() string               { return b.reason }
func (b *Block) CreatedBy() uuid.UUID         { return b.createdBy }
func (b *Block) CreatedAt() time.Time         { return b.createdAt }
