package middleware

import (
	"errors"
	"net/http"

	"go-devnetwork-backend/internal/delivery/http/response"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler drains errors attached via c.Error and renders them as the
// API envelopes. Anything that is not an AppError is logged server-side
// and reported as a bare 500; internals never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			logger.Log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
			response.ServerError(c)
			return
		}

		switch {
		case appErr.Code == http.StatusInternalServerError:
			logger.Log.Error("internal error", "path", c.Request.URL.Path, "error", appErr.Err)
			response.ServerError(c)
		case len(appErr.Errors) > 0:
			response.ValidationErrors(c, appErr.Errors...)
		default:
			response.Msg(c, appErr.Code, appErr.Message)
		}
	}
}
