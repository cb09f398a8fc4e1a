package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"studymanager/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/pretty"
)

const maxLoggedBody = 1000

// Logger logs one line per request; skipPaths are not logged (e.g. probes)
func Logger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		startTime := time.Now()

		// Capture POST body before handlers consume it
		var bodyStr string
		if c.Request.Method == http.MethodPost {
			bodyStr = getRequestBody(c)
		}

		c.Next()

		// Skip logging for 404 requests
		if c.Writer.Status() == http.StatusNotFound {
			return
		}

		ctx := c.Request.Context()
		if bodyStr != "" {
			logger.InfoCtx(ctx, "[GIN] %3d | %13v | %15s | %s | %s | body: %s",
				c.Writer.Status(), time.Since(startTime), c.ClientIP(), c.Request.Method, c.Request.RequestURI, bodyStr)
			return
		}
		logger.InfoCtx(ctx, "[GIN] %3d | %13v | %15s | %s | %s",
			c.Writer.Status(), time.Since(startTime), c.ClientIP(), c.Request.Method, c.Request.RequestURI)
	}
}

// getRequestBody gets request body content
func getRequestBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	bodyBytes, _ := io.ReadAll(c.Request.Body)
	// Reset request body since reading it clears it
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return CompressBody(string(bodyBytes))
}

// CompressBody strips JSON whitespace with pretty.Ugly and truncates long bodies
func CompressBody(body string) string {
	if len(body) == 0 {
		return ""
	}

	compressed := pretty.Ugly([]byte(body))
	if len(compressed) > maxLoggedBody {
		return string(compressed[:maxLoggedBody]) + "..."
	}
	return string(compressed)
}
