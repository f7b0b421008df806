package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK sends a 200 JSON response with a message and data.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Message: message, Data: data})
}

// NotFound sends 404 with a message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Body{Success: false, Message: message})
}

// Internal sends 500 with a message and the underlying error.
func Internal(c *gin.Context, message string, err error) {
	body := Body{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
