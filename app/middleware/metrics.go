package middleware

import (
	"strconv"
	"time"

	"studymanager/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
