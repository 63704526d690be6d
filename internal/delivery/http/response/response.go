package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SubmitResponse is the body of a successful inquiry submission
type SubmitResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// Success sends a JSON success response
func Success(c *gin.Context, code int, body interface{}) {
	c.JSON(code, body)
}

// Error sends an error response. details is omitted when empty.
func Error(c *gin.Context, code int, message string, details string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
