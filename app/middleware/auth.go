package middleware

import (
	"net/http"
	"strings"

	"studymanager/internal/model"
	"studymanager/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware simple token authentication middleware.
// An empty apiKey disables the check.
func AuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		// Get token from Authorization header
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		if token != apiKey {
			logger.WarnCtx(c.Request.Context(), "unauthorized request, invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
			return
		}

		c.Next()
	}
}
