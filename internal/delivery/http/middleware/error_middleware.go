package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"riverpatch-inquiry-backend/internal/delivery/http/response"
	"riverpatch-inquiry-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// The wrapped error text is only exposed when exposeDetails is set.
func ErrorHandler(exposeDetails bool, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			details := ""
			if exposeDetails {
				details = appErr.Details()
			}
			if appErr.Code >= http.StatusInternalServerError {
				log.ErrorContext(c.Request.Context(), "Request failed",
					"status", appErr.Code, "error", appErr.Details(), "request_id", GetRequestID(c))
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details for unclassified errors.
		log.ErrorContext(c.Request.Context(), "Internal Server Error", "error", err, "request_id", GetRequestID(c))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "")
	}
}
