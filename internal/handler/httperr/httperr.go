// Package httperr defines the single JSON error body this service writes,
// `{"error": "<message>"}`, and the helper every handler and middleware uses
// to emit it.
package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Abort writes the error body and stops the handler chain. The client only
// ever sees msg; err is recorded on the context so the logging middleware
// can surface the real cause.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Message: msg}
	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePrivate,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
