package router

import (
	"net/http"

	"studymanager/app/handler"
	"studymanager/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router Router
type Router struct {
	statusHandler *handler.StatusHandler
	logHandler    *handler.LogHandler
	searchHandler *handler.SearchHandler
	apiKey        string
}

// NewRouter creates a new Router. apiKey guards the data routes when set.
func NewRouter(statusHandler *handler.StatusHandler, logHandler *handler.LogHandler, searchHandler *handler.SearchHandler, apiKey string) *Router {
	return &Router{
		statusHandler: statusHandler,
		logHandler:    logHandler,
		searchHandler: searchHandler,
		apiKey:        apiKey,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.Logger("/health", "/metrics"))

	// Root status, also marks the service active for the idle monitor
	engine.GET("/", r.statusHandler.Root)

	api := engine.Group("")
	api.Use(middleware.AuthMiddleware(r.apiKey))
	{
		api.POST("/add_log", r.logHandler.AddLog)
		api.GET("/analyze_mistakes", r.logHandler.AnalyzeMistakes)
		api.GET("/search_web", r.searchHandler.SearchWeb)
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
