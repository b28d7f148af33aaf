package worker

import (
	"context"
	"log/slog"
	"time"

	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// DeadlineMonitor drives the time-based transitions of the booking state
// machine: opening the check-in window at start time, releasing no-shows
// once the grace period lapses, and completing checked-in bookings at end
// time. It is a sweep over persisted state, not a timer per booking, so a
// restart loses nothing: the next sweep re-derives all due work.
type DeadlineMonitor struct {
	uow      shared.UnitOfWork
	commands commands.BookingCommands
	clock    clock.Clock
	policy   config.BookingConfig
	logger   *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewDeadlineMonitor(uow shared.UnitOfWork, cmds commands.BookingCommands, clk clock.Clock, policy config.BookingConfig, logger *slog.Logger) *DeadlineMonitor {
	return &DeadlineMonitor{
		uow:      uow,
		commands: cmds,
		clock:    clk,
		policy:   policy,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (m *DeadlineMonitor) Start() {
	go m.run()
}

func (m *DeadlineMonitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

func (m *DeadlineMonitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.policy.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), m.policy.MonitorInterval)
			if err := m.RunOnce(ctx); err != nil {
				m.logger.Error("deadline sweep failed", "error", err.Error())
			}
			cancel()
		}
	}
}

// RunOnce executes a single sweep. Exported so tests and operational
// tooling can trigger sweeps deterministically.
func (m *DeadlineMonitor) RunOnce(ctx context.Context) error {
	now := m.clock.Now()

	promote, release, complete, err := m.dueWork(ctx, now)
	if err != nil {
		return err
	}

	m.apply(ctx, promote, "open check-in window", m.commands.BeginCheckInWindow)
	m.apply(ctx, release, "release expired booking", m.commands.ReleaseExpired)
	m.apply(ctx, complete, "complete elapsed booking", m.commands.CompleteElapsed)
	return nil
}

func (m *DeadlineMonitor) dueWork(ctx context.Context, now time.Time) (promote, release, complete []uuid.UUID, err error) {
	limit := m.policy.MonitorBatchLimit
	err = m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if promote, err = tx.Bookings().ListConfirmedStartedBefore(ctx, now, limit); err != nil {
			return err
		}
		deadline := now.Add(-m.policy.CheckInGrace)
		if release, err = tx.Bookings().ListUncheckedStartedBefore(ctx, deadline, limit); err != nil {
			return err
		}
		complete, err = tx.Bookings().ListCheckedInEndedBefore(ctx, now, limit)
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return promote, release, complete, nil
}

// apply processes each booking in its own transaction so one failure never
// poisons the rest of the batch.
func (m *DeadlineMonitor) apply(ctx context.Context, ids []uuid.UUID, action string, fn func(context.Context, uuid.UUID) error) {
	for _, id := range ids {
		if err := fn(ctx, id); err != nil {
			m.logger.Warn("sweep action failed",
				"action", action,
				"booking_id", id.String(),
				"error", err.Error())
		}
	}
}
