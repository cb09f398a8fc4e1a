package middleware

import (
	"net/http"
	"runtime/debug"

	"studymanager/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery middleware catches panic and converts it to standard error response
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				logger.ErrorCtx(c.Request.Context(),
					"panic recovered: %v\nstack:\n%s",
					err,
					string(stack),
				)

				body := gin.H{"detail": "Internal Server Error"}
				// Return stack trace in debug mode
				if gin.Mode() == gin.DebugMode {
					body["error"] = err
					body["stack"] = string(stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()

		c.Next()
	}
}
