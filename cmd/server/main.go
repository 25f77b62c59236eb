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
	"github.com/pathwise-labs/insights-service/internal/cache"
	"github.com/pathwise-labs/insights-service/internal/config"
	"github.com/pathwise-labs/insights-service/internal/events"
	"github.com/pathwise-labs/insights-service/internal/generation"
	"github.com/pathwise-labs/insights-service/internal/handlers"
	"github.com/pathwise-labs/insights-service/internal/repositories/postgres"
	"github.com/pathwise-labs/insights-service/internal/services"
	"github.com/pathwise-labs/insights-service/internal/utils"
	"github.com/pathwise-labs/insights-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	if err := pkg.AutoMigrate(db); err != nil {
		logger.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	cacheService := cache.NewRedisCache(redisClient, slogLogger)

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("No Kafka brokers configured, events will not leave the process")
		publisher = events.NewMockEventPublisher(slogLogger)
	} else {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventsTopic,
			Logger:       slogLogger,
		})
		if err != nil {
			logger.Error("Kafka publisher setup failed", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	}
	defer publisher.Close()

	ctx := context.Background()
	generator, err := generation.NewContentGenerator(ctx, cfg)
	if err != nil {
		logger.Error("Content generator setup failed", "error", err, "provider", cfg.GeneratorProvider)
		os.Exit(1)
	}
	logger.Info("Content generator ready", "provider", cfg.GeneratorProvider, "model", generator.ModelID())

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()

	remediationService := services.NewRemediationService(generator, slogLogger)
	historyService := services.NewLessonHistoryService(repo, slogLogger)
	analysisService := services.NewAnalysisService(
		repo, remediationService, historyService,
		cacheService, publisher, slogLogger, cfg.WeakThreshold,
	)
	exportService := services.NewExportService(repo, slogLogger)
	gameService := services.NewGameTraitService(repo, publisher, slogLogger, validator)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		analysisService, historyService, exportService, gameService, logger,
	)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting insights service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down insights service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
