package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/api"
	"github.com/sentitube/sentitube/internal/cache"
	"github.com/sentitube/sentitube/internal/progress"
	"github.com/sentitube/sentitube/internal/scoring"
	"github.com/sentitube/sentitube/internal/sentiment"
	"github.com/sentitube/sentitube/internal/youtube"
	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
	"github.com/sentitube/sentitube/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting SentiTube API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Upstream client and ingestion pipeline
	ytClient, err := youtube.New(&cfg.YouTube)
	if err != nil {
		logger.Fatal("Failed to create YouTube client", zap.Error(err))
	}
	ingestor := youtube.NewIngestor(ytClient, &cfg.YouTube)

	tracker := progress.NewTracker()
	resultCache := cache.New(&cfg.Cache)

	providers := func(modelKey, apiKey string) (sentiment.Provider, error) {
		return sentiment.ForModel(modelKey, apiKey, &cfg.Providers)
	}
	scorer := scoring.New(ingestor, providers, resultCache, tracker, &cfg.Providers)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Provider-Key"},
		MaxAge:       12 * time.Hour,
	}))

	apiRouter := api.NewRouter(ingestor, ytClient, scorer, tracker, providers)
	apiRouter.SetupRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
