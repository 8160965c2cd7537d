package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/stayfindz/backend/config"
	"github.com/stayfindz/backend/internal/consumer"
	"github.com/stayfindz/backend/internal/handler"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/realtime"
	"github.com/stayfindz/backend/internal/repository"
	"github.com/stayfindz/backend/internal/service"
	"github.com/stayfindz/backend/pkg/database"
	"github.com/stayfindz/backend/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: domain events out, notification jobs in
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// Realtime hub
	hub := realtime.NewHub()
	go hub.Run()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Notification consumer: durable queued dispatch + realtime push
	notificationConsumer := consumer.NewNotificationConsumer(notificationRepo, hub)
	notificationConsumer.Start(msgs)

	// Services
	fees := service.FeeSchedule{Service: cfg.ServiceFee, Cleaning: cfg.CleaningFee}
	authSvc := service.NewAuthService(userRepo, listingRepo, cfg.JWTSecret, cfg.JWTExpiry)
	listingSvc := service.NewListingService(listingRepo, userRepo, publisher)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo, publisher, fees)
	notificationSvc := service.NewNotificationService(notificationRepo)
	analyticsSvc := service.NewAnalyticsService(bookingRepo, listingRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "stayfindz-api"})
	})

	handler.NewUserHandler(authSvc, cfg.JWTSecret).RegisterRoutes(e)
	handler.NewListingHandler(listingSvc, cfg.JWTSecret).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, cfg.JWTSecret).RegisterRoutes(e)
	handler.NewNotificationHandler(notificationSvc, cfg.JWTSecret).RegisterRoutes(e)
	handler.NewAdminHandler(listingSvc, bookingSvc, authSvc, analyticsSvc, cfg.JWTSecret).RegisterRoutes(e)
	handler.NewWSHandler(hub, cfg.JWTSecret).RegisterRoutes(e)

	log.Printf("StayFindz API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
