package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Dinesh1441/carstreet-sub002/internal/config"
	"github.com/Dinesh1441/carstreet-sub002/internal/database"
	"github.com/Dinesh1441/carstreet-sub002/internal/handler"
	"github.com/Dinesh1441/carstreet-sub002/internal/middleware"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
	"github.com/Dinesh1441/carstreet-sub002/internal/router"
	"github.com/Dinesh1441/carstreet-sub002/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Lead{},
		&models.Car{},
		&models.Document{},
		&models.SellOpportunity{},
		&models.ActivityEvent{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, timeline cache disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	carRepo := repository.NewCarRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)

	activityWriter := service.NewActivityWriter(activityRepo, redisClient, logger)
	timelineService := service.NewTimelineService(activityRepo, redisClient, cfg.TimelineCacheTTL, logger)
	leadService := service.NewLeadService(leadRepo, activityWriter, validate, logger)
	carService := service.NewCarService(carRepo, activityWriter, validate, logger)
	documentService := service.NewDocumentService(documentRepo, activityWriter, validate, logger)
	opportunityService := service.NewOpportunityService(opportunityRepo, leadRepo, activityWriter, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, CORSOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		LeadHandler:        handler.NewLeadHandler(leadService, logger),
		CarHandler:         handler.NewCarHandler(carService, logger),
		DocumentHandler:    handler.NewDocumentHandler(documentService, logger),
		OpportunityHandler: handler.NewOpportunityHandler(opportunityService, logger),
		TimelineHandler:    handler.NewTimelineHandler(timelineService, !cfg.IsProduction(), logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
