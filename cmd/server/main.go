package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/internal/api"
	"github.com/scoutlab/scout-dashboard/internal/api/handlers"
	"github.com/scoutlab/scout-dashboard/internal/api/middleware"
	"github.com/scoutlab/scout-dashboard/internal/models"
	"github.com/scoutlab/scout-dashboard/internal/scouting"
	"github.com/scoutlab/scout-dashboard/internal/services"
	"github.com/scoutlab/scout-dashboard/internal/session"
	"github.com/scoutlab/scout-dashboard/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis; the answer cache is optional and the dashboard
	// runs uncached when no instance is reachable
	var cacheService *services.CacheService
	if opt, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logrus.Warnf("Invalid Redis URL, answer cache disabled: %v", err)
	} else {
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Warnf("Redis unreachable, answer cache disabled: %v", err)
			redisClient.Close()
		} else {
			defer redisClient.Close()
			cacheService = services.NewCacheService(redisClient)
		}
	}

	// Initialize the dataset session store and its expiry sweeper
	store := session.NewStore(cfg.SessionTTL, logrus.StandardLogger())
	store.StartSweeper()
	defer store.StopSweeper()

	// Preload the bundled dataset when one is configured
	if cfg.DatasetPath != "" {
		if err := preloadDataset(store, cfg.DatasetPath); err != nil {
			logrus.Fatalf("Failed to preload dataset %s: %v", cfg.DatasetPath, err)
		}
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.Metrics())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Health and metrics endpoints
	healthHandler := handlers.NewHealthHandler(store)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, store, cacheService, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// preloadDataset loads the bundled CSV under the fixed id "default" so
// clients can explore without uploading a file first.
func preloadDataset(store *session.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	players, err := models.LoadCSV(f)
	if err != nil {
		return err
	}

	store.PutPinned("default", path, scouting.Enrich(players))
	return nil
}
