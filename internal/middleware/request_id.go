package middleware

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-api/internal/utils"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return requestid.New(requestid.WithGenerator(utils.NewID))
}

// GetRequestID retrieves the request id of the current request
func GetRequestID(c *gin.Context) string {
	return requestid.Get(c)
}
