package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studymanager/app/handler"
	"studymanager/app/router"
	"studymanager/internal/service"
	"studymanager/pkg/config"
	"studymanager/pkg/idle"
	"studymanager/pkg/logger"
	"studymanager/pkg/notion"
	"studymanager/pkg/search"
	redisstore "studymanager/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.InfoCtx(app.ctx, "Logging system has been closed")
		_ = logger.Sync()
	})
	return nil
}

// initRedis initializes Redis when an address is configured
func (app *Application) initRedis() error {
	if app.config.Redis.Addr == "" {
		logger.Infof("Redis address not configured, idle state will not be persisted")
		return nil
	}

	pingCtx, cancel := context.WithTimeout(app.ctx, 5*time.Second)
	defer cancel()

	client, err := redisstore.NewRedisClient(pingCtx, &app.config.Redis)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.activityRepo = redisstore.NewActivityRepository(client)
	app.registerCleanup(func() {
		if err := app.redisClient.Close(); err != nil {
			logger.Errorf("Failed to close Redis connection: %v", err)
			return
		}
		logger.Infof("Redis connection has been closed")
	})

	return nil
}

// initClients initializes the Notion and search API clients
func (app *Application) initClients() error {
	if app.config.Notion.APIKey == "" || app.config.Notion.DatabaseID == "" {
		logger.Warnf("NOTION_API_KEY or DATABASE_ID not configured, database calls will fail upstream")
	}
	if app.config.Search.APIKey == "" {
		logger.Warnf("GOOGLE_API_KEY not configured, web search calls will fail upstream")
	}

	app.notionClient = notion.NewClient(&app.config.Notion)
	app.searchClient = search.NewClient(&app.config.Search)
	return nil
}

// initIdleMonitor creates the idle monitor, seeded from Redis when available
func (app *Application) initIdleMonitor() error {
	var lastActive time.Time
	if app.activityRepo != nil {
		stored, ok, err := app.activityRepo.LoadLastActive(app.ctx)
		switch {
		case err != nil:
			logger.Warnf("Failed to load persisted idle state: %v", err)
		case ok:
			lastActive = restoredLastActive(stored, app.config.Idle.Threshold, time.Now())
		}
	}

	app.idleMonitor = idle.NewMonitorFromConfig(&app.config.Idle, lastActive)
	return nil
}

// restoredLastActive returns the persisted mark unless it is already past the
// idle threshold, in which case the zero time seeds the monitor with now.
func restoredLastActive(stored time.Time, threshold time.Duration, now time.Time) time.Time {
	if now.Sub(stored) > threshold {
		logger.Infof("Ignoring persisted last active time %s, older than idle threshold %v", stored.Format(time.RFC3339), threshold)
		return time.Time{}
	}
	logger.Infof("Restored last active time: %s", stored.Format(time.RFC3339))
	return stored
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.logService = service.NewLogService(app.notionClient)
	app.searchService = service.NewSearchService(app.searchClient)
	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.statusHandler = handler.NewStatusHandler(app.idleMonitor)
	app.logHandler = handler.NewLogHandler(app.logService)
	app.searchHandler = handler.NewSearchHandler(app.searchService)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	gin.SetMode(app.config.Server.Mode)

	app.ginEngine = gin.New()
	r := router.NewRouter(app.statusHandler, app.logHandler, app.searchHandler, app.config.Server.APIKey)
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}
	return nil
}
