package components

import (
	"facility-booking/internal/infra/db"
	"facility-booking/internal/infra/readstore"
	"facility-booking/internal/infra/uow"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		func(u shared.UnitOfWork) shared.StoreReads {
			return u.Reads()
		},
		fx.Annotate(
			readstore.NewFacilityReadStore,
			fx.As(new(queries.FacilityReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewLedgerReadStore,
			fx.As(new(queries.LedgerReadStore)),
		),
		fx.Annotate(
			readstore.NewInviteReadStore,
			fx.As(new(queries.InviteReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
