package middleware

import (
	"log/slog"

	"facility-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the browser CORS policy. The access token rides a
// cookie, so credentialed requests stay enabled for the configured frontend
// origins; wildcard origins do not work with credentials and are not
// defaulted.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	slog.Info("CORS policy configured",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials)

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
