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
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/config"
	"github.com/noah-isme/fpams-go-api/internal/database"
	"github.com/noah-isme/fpams-go-api/internal/handler"
	"github.com/noah-isme/fpams-go-api/internal/middleware"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
	"github.com/noah-isme/fpams-go-api/internal/router"
	"github.com/noah-isme/fpams-go-api/internal/service"
	cloud "github.com/noah-isme/fpams-go-api/pkg/cloudinary"
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
		&models.Department{},
		&models.User{},
		&models.Subject{},
		&models.Activity{},
		&models.TeachingScore{},
		&models.AuditLog{},
		&models.Feedback{},
		&models.ExamResult{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	workflowConfig := service.DefaultWorkflowConfig()

	activityRepo := repository.NewActivityRepository(db)
	teachingScoreRepo := repository.NewTeachingScoreRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	userRepo := repository.NewUserRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	examResultRepo := repository.NewExamResultRepository(db)

	activityService := service.NewActivityService(activityRepo, auditRepo, validate, workflowConfig, logger)
	teachingScoreService := service.NewTeachingScoreService(teachingScoreRepo, auditRepo, validate, logger)
	validationService := service.NewValidationService(workflowRepo, validate, workflowConfig, logger)
	auditService := service.NewAuditService(auditRepo, userRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, userRepo, redisClient, cfg.AnalyticsCacheTTL, logger)
	examResultService := service.NewExamResultService(examResultRepo, validate, logger)
	uploadService := service.NewUploadService(uploader, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:      handler.NewActivityHandler(activityService, logger),
		TeachingScoreHandler: handler.NewTeachingScoreHandler(teachingScoreService, logger),
		ValidationHandler:    handler.NewValidationHandler(validationService, logger),
		AuditHandler:         handler.NewAuditHandler(auditService, logger),
		AnalyticsHandler:     handler.NewAnalyticsHandler(analyticsService, logger),
		ExamResultHandler:    handler.NewExamResultHandler(examResultService, logger),
		UploadHandler:        handler.NewUploadHandler(uploadService, logger),
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
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
