package middleware

import (
	"log/slog"
	"net/http"

	"facility-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the backstop for handlers that recorded an error but never
// wrote a body. Handlers that respond through httperr.Abort have already
// written, so this only fires on forgotten or short-circuited paths.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if last := c.Errors.Last(); last != nil {
			status, msg := http.StatusInternalServerError, "Internal server error"
			if resp, ok := last.Meta.(httperr.Response); ok {
				status, msg = resp.Status, resp.Message
			}
			c.JSON(status, httperr.Response{Status: status, Message: msg})
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
		}
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered from panic", "error", r, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.Response{
					Status:  http.StatusInternalServerError,
					Message: "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
