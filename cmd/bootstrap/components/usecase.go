package components

import (
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewInviteCommands,
		commands.NewLedgerCommands,
		commands.NewMaintenanceCommands,
		commands.NewAuthCommands,
		commands.NewTokenValidator,
		queries.NewFacilityQueries,
		queries.NewBookingQueries,
		queries.NewLedgerQueries,
		queries.NewInviteQueries,
	),
)
