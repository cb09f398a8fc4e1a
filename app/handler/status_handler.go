package handler

import (
	"net/http"

	"studymanager/internal/model"

	"github.com/gin-gonic/gin"
)

// ActivityRecorder receives a touch on every root request
type ActivityRecorder interface {
	Touch()
}

// StatusHandler serves the root route
type StatusHandler struct {
	activity ActivityRecorder
}

// NewStatusHandler creates status handler
func NewStatusHandler(activity ActivityRecorder) *StatusHandler {
	return &StatusHandler{activity: activity}
}

// Root reports that the backend is running and marks it active
// @Summary Service status
// @Tags system
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Router / [get]
func (h *StatusHandler) Root(c *gin.Context) {
	if h.activity != nil {
		h.activity.Touch()
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Study Manager AI Backend is Running!"})
}
