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
	"go.uber.org/zap"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/auth"
	"github.com/PawMart-Adoption/service-listing/internal/config"
	"github.com/PawMart-Adoption/service-listing/internal/consumer"
	"github.com/PawMart-Adoption/service-listing/internal/database"
	"github.com/PawMart-Adoption/service-listing/internal/handler"
	"github.com/PawMart-Adoption/service-listing/internal/kafka"
	"github.com/PawMart-Adoption/service-listing/internal/logger"
	"github.com/PawMart-Adoption/service-listing/internal/media"
	"github.com/PawMart-Adoption/service-listing/internal/middleware"
	"github.com/PawMart-Adoption/service-listing/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-listing")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-listing",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.ListingModel{}, &repository.PostModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize media storage
	mediaStorage, err := media.NewS3Storage(context.Background(), cfg.MediaConfig, log)
	if err != nil {
		log.Fatal("failed to initialize media storage", zap.Error(err))
	}

	// Initialize repositories
	listingRepo := repository.NewGormListingRepository(db)
	postRepo := repository.NewGormPostRepository(db)

	// Initialize application services
	listingService := application.NewListingService(
		listingRepo,
		mediaStorage,
		kafkaProducer,
		log,
	)
	postService := application.NewPostService(postRepo, mediaStorage, log)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "listing-service"
	paymentConsumer := consumer.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		listingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	listingHandler := handler.NewListingHandler(listingService, cfg.UploadDir)
	postHandler := handler.NewPostHandler(postService, cfg.UploadDir)
	adminHandler := handler.NewAdminListingHandler(listingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-listing")
	healthHandler.RegisterRoutes(router)

	// Register routes
	listingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	postHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-listing...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-listing stopped")
}
