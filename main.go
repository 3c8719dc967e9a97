package main

import (
	"log"

	"github.com/confstay/booking-service/config"
	"github.com/confstay/booking-service/internal/consumer"
	"github.com/confstay/booking-service/internal/handler"
	"github.com/confstay/booking-service/internal/middleware"
	"github.com/confstay/booking-service/internal/repository"
	"github.com/confstay/booking-service/internal/service"
	"github.com/confstay/booking-service/pkg/database"
	"github.com/confstay/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync hotel/room catalog from the Hotel Service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	catalogConsumer := consumer.NewCatalogConsumer(db)
	catalogConsumer.Start(msgs)

	// RabbitMQ publisher: booking lifecycle events
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Service
	bookingSvc := service.NewBookingService(bookingRepo, enrollmentRepo, ticketRepo, roomRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-service"})
	})

	auth := middleware.Auth(cfg.JWTSecret, sessionRepo)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, auth)

	log.Printf("Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
