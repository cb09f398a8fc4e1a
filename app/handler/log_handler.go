package handler

import (
	"net/http"

	"studymanager/internal/model"
	"studymanager/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler handles study log operations
type LogHandler struct {
	logService *service.LogService
}

// NewLogHandler creates log handler
func NewLogHandler(logService *service.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// AddLog adds a new study log entry
// @Summary Add study log
// @Description Writes a study log entry to the Notion database
// @Tags logs
// @Param task_name query string true "Task/quest name"
// @Param status query string true "Status"
// @Param mistakes query string false "Mistakes and corrections (default: None)"
// @Param rewards query string false "Boss battles and rewards (default: None)"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /add_log [post]
func (h *LogHandler) AddLog(c *gin.Context) {
	var req model.AddLogRequest
	// Query parameters first, then any body (form or JSON) on top of them
	queryErr := c.ShouldBindQuery(&req)
	if c.Request.ContentLength == 0 {
		if queryErr != nil {
			respondBindError(c, queryErr)
			return
		}
	} else if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.logService.AddLog(c.Request.Context(), &req); err != nil {
		respondUpstreamError(c, "Failed to add log", err, true)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Log added successfully!"})
}

// AnalyzeMistakes counts repeated mistakes across logged entries
// @Summary Analyze mistakes
// @Description Returns how often each mistake text was recorded
// @Tags logs
// @Produce json
// @Success 200 {object} model.MistakeAnalysisResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /analyze_mistakes [get]
func (h *LogHandler) AnalyzeMistakes(c *gin.Context) {
	tally, err := h.logService.AnalyzeMistakes(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, "Failed to fetch data", err, true)
		return
	}

	c.JSON(http.StatusOK, model.MistakeAnalysisResponse{MistakeAnalysis: tally})
}
