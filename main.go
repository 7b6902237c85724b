// File: musicminds/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicminds/config"
	"musicminds/handlers"
	"musicminds/middleware"
	"musicminds/routes"
	"musicminds/services/auth"
	"musicminds/services/backend"
	"musicminds/services/download"
	"musicminds/services/export"
	"musicminds/services/listing"
	"musicminds/services/notification"
	"musicminds/services/session"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Upstream client shared by every relay.
	backendClient := backend.NewClient(config.BackendURL(), config.BackendTimeout(), nil, logger.Named("backend"))

	// Logout denylist: redis when reachable, memory otherwise.
	var store session.Store
	redisClient := utils.GetSessionCacheClient()
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
	} else {
		store = session.NewMemoryStore()
	}

	// services.
	listingService := listing.NewListingService(backendClient, listing.DefaultResources)
	sessionService := session.NewSessionService(backendClient, config.AppConfig.SessionPath)
	authService := auth.NewAuthService(backendClient, store)
	exportService := export.NewExportService(backendClient, listingService, config.AppConfig.ExportPath, config.AppConfig.ExportFetchConcurrency)
	downloadService := download.NewDownloadService(config.BackendTimeout(), config.DownloadHosts(), config.AppConfig.DownloadMaxBytes)
	notificationService := notification.NewNotificationService(backendClient, listingService, sessionService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SessionStore:  store,
		Resources:     listing.DefaultResources,
		Auth:          handlers.NewAuthHandler(authService, config.AppConfig.CookieSecure),
		Resource:      handlers.NewResourceHandler(listingService, backendClient),
		Export:        handlers.NewExportHandler(exportService),
		Download:      handlers.NewDownloadHandler(downloadService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Session:       handlers.NewSessionHandler(sessionService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background health probes.
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	checks := map[string]utils.HealthCheck{"backend": backendClient.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	monitorDone := utils.StartHealthMonitor(monitorCtx, config.HealthInterval(), checks)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("backend", backendClient.BaseURL()),
		zap.Bool("redis", redisClient != nil),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	stopMonitor()
	<-monitorDone

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("main: server forced to shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("main: server stopped gracefully")
}
