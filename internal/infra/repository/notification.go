package repository

import (
	"context"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository enqueues outbox jobs a separate dispatcher drains.
// Writing the job in the same transaction as the booking write keeps the
// notification exactly as durable as the event it announces.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

var _ shared.NotificationRepository = (*NotificationRepository)(nil)

const insertJobSQL = `
INSERT INTO notification_jobs (id, kind, payload, run_at, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, insertJobSQL, uuid.New(), kind, payload, runAt, time.Now().UTC())
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
