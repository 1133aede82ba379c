package respond

import (
	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/telemetry"
)

// ErrorResponse is the stable error envelope consumed by the frontend and
// demo clients. Keys never change so callers can assert on success, error
// and message.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response and logs it with the request
// correlation id. Stack traces never reach the client.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
		"client_ip":  c.ClientIP(),
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
		Details: details,
	})
}
