package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Facility *api.FacilityHandler
	Booking  *api.BookingHandler
	Invite   *api.InviteHandler
	Credit   *api.CreditHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		facilities := apiGroup.Group("/facilities")
		facilities.Use(authMiddleware.RequireAuth())
		{
			addRoutes(facilities, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Facility.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Facility.Get},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Facility.Availability},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
				{Method: http.MethodGet, Path: "/claimable", Handler: h.Booking.ListClaimable},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Cancel},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: h.Booking.CheckIn},
				{Method: http.MethodPost, Path: "/:id/claim", Handler: h.Booking.Claim},
				{Method: http.MethodPost, Path: "/:id/invites", Handler: h.Invite.Create},
			})
		}

		invites := apiGroup.Group("/invites")
		invites.Use(authMiddleware.RequireAuth())
		{
			addRoutes(invites, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Invite.ListMine},
				{Method: http.MethodPost, Path: "/:id/respond", Handler: h.Invite.Respond},
			})
		}

		credits := apiGroup.Group("/credits")
		credits.Use(authMiddleware.RequireAuth())
		{
			addRoutes(credits, []route{
				{Method: http.MethodGet, Path: "/balance", Handler: h.Credit.Balance},
				{Method: http.MethodGet, Path: "/history", Handler: h.Credit.History},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/credits", Handler: h.Admin.AdjustCredits},
				{Method: http.MethodPost, Path: "/maintenance", Handler: h.Admin.CreateMaintenanceBlock},
				{Method: http.MethodDelete, Path: "/maintenance/:id", Handler: h.Admin.DeleteMaintenanceBlock},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Admin.ListBookings},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
