package handler

import (
	"fmt"
	"net/http"

	"studymanager/internal/model"
	"studymanager/pkg/logger"
	"studymanager/pkg/upstream"

	"github.com/gin-gonic/gin"
)

// respondUpstreamError maps a failed outbound call to a response.
// An upstream non-success status is a 400; with withBody the raw upstream
// body is appended to the message. Transport failures are a 502.
func respondUpstreamError(c *gin.Context, message string, err error, withBody bool) {
	ctx := c.Request.Context()

	upErr, ok := upstream.As(err)
	if !ok {
		logger.ErrorCtx(ctx, "%s: %v", message, err)
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Detail: message})
		return
	}

	logger.WarnCtx(ctx, "%s: %s returned status %d", message, upErr.Service, upErr.StatusCode)
	detail := message
	if withBody {
		detail = fmt.Sprintf("%s: %s", message, string(upErr.Body))
	}
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: detail})
}

// respondBindError reports missing or malformed request parameters
func respondBindError(c *gin.Context, err error) {
	logger.WarnCtx(c.Request.Context(), "invalid request: %v", err)
	c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{Detail: err.Error()})
}
