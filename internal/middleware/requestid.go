package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID assigns each request a UUID, echoed in the X-Request-ID response
// header and attached to the request log line. An incoming X-Request-ID is
// reused so callers can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// GetRequestID returns the request's assigned ID, or "" outside RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
