package queries

import (
	"context"
	"time"

	"facility-booking/internal/domain/availability"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type FacilityQueries interface {
	List(ctx context.Context) ([]FacilityView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*FacilityView, error)
	// AvailabilityOn computes the free slots of a facility day from its
	// operating hours minus every occupying booking and maintenance block.
	AvailabilityOn(ctx context.Context, facilityID uuid.UUID, day time.Time) (*AvailabilityView, error)
}

type facilityQueriesImpl struct {
	reads     shared.StoreReads
	readStore FacilityReadStore
}

func NewFacilityQueries(reads shared.StoreReads, readStore FacilityReadStore) FacilityQueries {
	return &facilityQueriesImpl{
		reads:     reads,
		readStore: readStore,
	}
}

func (q *facilityQueriesImpl) List(ctx context.Context) ([]FacilityView, error) {
	return q.readStore.List(ctx)
}

func (q *facilityQueriesImpl) FindByID(ctx context.Context, id uuid.UUID) (*FacilityView, error) {
	return q.readStore.FindByID(ctx, id)
}

func (q *facilityQueriesImpl) AvailabilityOn(ctx context.Context, facilityID uuid.UUID, day time.Time) (*AvailabilityView, error) {
	fac, err := q.reads.FacilityByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	dayUTC := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	occupying, err := q.readStore.OccupanciesOn(ctx, facilityID, dayUTC)
	if err != nil {
		return nil, err
	}

	free := availability.FreeSlots(fac.Hours(), dayUTC, occupying)
	slots := make([]FreeSlotView, 0, len(free))
	for _, s := range free {
		slots = append(slots, FreeSlotView{StartsAt: s.Start, EndsAt: s.End})
	}
	return &AvailabilityView{
		FacilityID: facilityID,
		Day:        dayUTC,
		FreeSlots:  slots,
	}, nil
}
