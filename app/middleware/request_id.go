package middleware

import (
	"studymanager/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one, and
// stores it as the trace id of the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
