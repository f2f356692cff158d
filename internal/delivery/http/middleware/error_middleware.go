package middleware

import (
	"errors"
	"net/http"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logRequestError(c, err)
				response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
				return
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			// Never expose internal error details to clients
			logRequestError(c, err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}

func logRequestError(c *gin.Context, err error) {
	cause := err
	if u := errors.Unwrap(err); u != nil {
		cause = u
	}
	logger.Log.Error("request failed",
		"error", cause,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", c.GetString("RequestID"),
	)
}
