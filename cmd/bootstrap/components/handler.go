package components

import (
	"facility-booking/internal/handler"
	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewFacilityHandler,
		api.NewBookingHandler,
		api.NewInviteHandler,
		api.NewCreditHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	facility *api.FacilityHandler,
	booking *api.BookingHandler,
	invite *api.InviteHandler,
	credit *api.CreditHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Facility: facility,
		Booking:  booking,
		Invite:   invite,
		Credit:   credit,
		Admin:    admin,
	}
}
