package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"facility-booking/internal/domain/facility"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/infra/readstore"
	"facility-booking/internal/infra/repository"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writers; the
// per-facility-day advisory lock provides the stronger ordering where the
// conflict check needs it.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.StoreReads {
	return &storeReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to keep the value positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo      shared.BookingRepository
	inviteRepo       shared.InviteRepository
	ledgerRepo       shared.LedgerRepository
	maintenanceRepo  shared.MaintenanceRepository
	notificationRepo shared.NotificationRepository
	reads            shared.StoreReads
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Invites() shared.InviteRepository {
	if t.inviteRepo == nil {
		t.inviteRepo = repository.NewInviteRepository(t.dbtx)
	}
	return t.inviteRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Maintenance() shared.MaintenanceRepository {
	if t.maintenanceRepo == nil {
		t.maintenanceRepo = repository.NewMaintenanceRepository(t.dbtx)
	}
	return t.maintenanceRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.StoreReads {
	if t.reads == nil {
		t.reads = &storeReads{dbtx: t.dbtx}
	}
	return t.reads
}

// LockFacilityDay serializes writers of one facility day without blocking
// the rest of the table. The lock is transaction scoped and released on
// commit or rollback.
func (t *pgTx) LockFacilityDay(ctx context.Context, facilityID uuid.UUID, day time.Time) error {
	key := facilityID.String() + ":" + day.UTC().Format("2006-01-02")
	_, err := t.dbtx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	if err != nil {
		return infra.WrapRepoErr("failed to acquire facility day lock", err)
	}
	return nil
}

type storeReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	facilityStore *readstore.FacilityReadStore
	accountStore  *readstore.AccountReadStore
}

func (r *storeReads) FacilityByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	if r.facilityStore == nil {
		r.facilityStore = readstore.NewFacilityReadStore(r.dbtx)
	}
	return r.facilityStore.DomainByID(ctx, id)
}

func (r *storeReads) AccountByID(ctx context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	if r.accountStore == nil {
		r.accountStore = readstore.NewAccountReadStore(r.dbtx)
	}
	return r.accountStore.SnapshotByID(ctx, id)
}

func (r *storeReads) AccountByEmail(ctx context.Context, email string) (*shared.AccountSnapshot, error) {
	if r.accountStore == nil {
		r.accountStore = readstore.NewAccountReadStore(r.dbtx)
	}
	return r.accountStore.SnapshotByEmail(ctx, email)
}
