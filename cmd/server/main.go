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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/api"
	"github.com/jstittsworth/td-scout/internal/api/middleware"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/providers"
	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/config"
	"github.com/jstittsworth/td-scout/pkg/database"
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
	logger := logrus.StandardLogger()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize core services
	cacheService := services.NewCacheService(redisClient)
	resolver := nfl.NewResolver()
	wsHub := services.NewWebSocketHub(logger)
	go wsHub.Run()

	// External data providers
	espn := providers.NewESPNClient(cacheService, logger)
	validator := providers.NewSportsDataClient(
		cfg.SportsDataAPIKey,
		cfg.ExternalAPITimeout,
		cfg.CircuitBreakerThreshold,
		cacheService,
		resolver,
		logger,
	)

	// SMS digest
	var sender services.SMSSender
	if cfg.SMSProvider == "twilio" {
		sender = services.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	} else {
		sender = services.NewMockSMSSender(logger)
	}
	smsLimiter := services.NewSMSRateLimiter(3, time.Hour)
	notifier := services.NewNotifier(sender, smsLimiter, cfg.DigestRecipients, cfg.DigestSize, logger)

	recService := services.NewRecommendationService(db, cacheService, cfg, resolver, validator, wsHub, notifier, logger)

	// Scheduled schedule refresh
	var dataFetcher *services.DataFetcherService
	if cfg.EnableBackgroundJobs {
		dataFetcher = services.NewDataFetcherService(db, cacheService, espn, cfg.Season, cfg.DataFetchCron, logger)
		if err := dataFetcher.Start(); err != nil {
			logrus.Errorf("Failed to start data fetcher: %v", err)
		} else {
			defer dataFetcher.Stop()
		}
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db, cacheService, recService, dataFetcher, resolver, cfg, logger)

	// WebSocket endpoint for run progress, at root level
	router.GET("/ws", middleware.OptionalAuth(cfg.JWTSecret), func(c *gin.Context) {
		wsHub.ServeWS(c.Writer, c.Request)
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
