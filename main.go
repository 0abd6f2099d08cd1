package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhub/config"
	"tutorhub/database"
	classesRepo "tutorhub/database/repository/classes"
	profileRepo "tutorhub/database/repository/profile"
	"tutorhub/handlers"
	"tutorhub/middleware"
	"tutorhub/routes"
	"tutorhub/services/booking"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 60*time.Second,
		utils.MongoProbe(database.MongoClient),
		utils.RedisProbe(cache))

	if err := handlers.RegisterValidators(); err != nil {
		logger.Sugar().Fatalf("main: failed to register validators: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	profiles := profileRepo.NewMongoProfileRepo()
	classes := classesRepo.NewMongoClassRepo()

	// services.
	schedulingService := &booking.DefaultSchedulingService{
		Profiles: profiles,
		Classes:  classes,
		Cache:    booking.NewRedisSnapshotCache(cache, time.Duration(config.AppConfig.SnapshotTTLSeconds)*time.Second),
		Settings: config.AppConfig.SchedulingDefaults(),
		Logger:   logger,
	}
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)

	routes.RegisterRoutes(router, schedulingHandler, config.AppConfig.AllowedOrigins())

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

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}
	if err := cache.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close Redis: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
