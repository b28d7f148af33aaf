package bootstrap

import (
	"facility-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BookingConfig {
			return cfg.Booking
		},
	),
)
