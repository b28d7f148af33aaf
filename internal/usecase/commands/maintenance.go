package commands

import (
	"context"
	"time"

	"facility-booking/internal/domain/availability"
	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/maintenance"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateMaintenanceBlockInput struct {
	FacilityID uuid.UUID
	Start      time.Time
	End        time.Time
	Reason     string
}

type MaintenanceCommands interface {
	CreateBlock(ctx context.Context, actor Actor, in CreateMaintenanceBlockInput) (uuid.UUID, error)
	DeleteBlock(ctx context.Context, actor Actor, blockID uuid.UUID) error
}

type maintenanceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMaintenanceCommands(uow shared.UnitOfWork, clk clock.Clock) MaintenanceCommands {
	return &maintenanceCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

// CreateBlock reserves a facility window for maintenance. Blocks never
// displace existing bookings, so the same conflict check applies.
func (c *maintenanceCommandsImpl) CreateBlock(ctx context.Context, actor Actor, in CreateMaintenanceBlockInput) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, errs.ErrForbidden
	}

	timeRange, err := booking.NewTimeRange(in.Start, in.End)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeRange)
	}

	now := c.clock.Now()
	blk, err := maintenance.NewBlock(in.FacilityID, timeRange, in.Reason, actor.ID, now)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().FacilityByID(ctx, in.FacilityID); err != nil {
			return err
		}
		if err := tx.LockFacilityDay(ctx, in.FacilityID, timeRange.Day()); err != nil {
			return err
		}
		occupying, err := occupanciesFor(ctx, tx, in.FacilityID, timeRange.Day(), uuid.Nil)
		if err != nil {
			return err
		}
		if hits := availability.Conflicts(timeRange, occupying); len(hits) > 0 {
			return errs.ErrSlotConflict
		}
		return tx.Maintenance().Create(ctx, blk)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return blk.ID(), nil
}

func (c *maintenanceCommandsImpl) DeleteBlock(ctx context.Context, actor Actor, blockID uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.Maintenance().Delete(ctx, blockID)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.ErrMaintenanceBlockNotFound
		}
		return nil
	})
}
