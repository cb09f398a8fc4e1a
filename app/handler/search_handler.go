package handler

import (
	"net/http"

	"studymanager/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles web search requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

type searchQuery struct {
	Query string `form:"query" binding:"required"`
}

// SearchWeb proxies a query to the search API and relays its JSON
// @Summary Search the web
// @Tags search
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} map[string]interface{} "Raw search API response"
// @Failure 400 {object} model.ErrorResponse
// @Router /search_web [get]
func (h *SearchHandler) SearchWeb(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), q.Query)
	if err != nil {
		respondUpstreamError(c, "Failed to fetch web results.", err, false)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}
