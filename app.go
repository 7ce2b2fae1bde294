package main

import (
	"orderservice/internal/handlers"
	"orderservice/internal/middleware"
	"orderservice/internal/repositories"
	"orderservice/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires the order routes and the health probe onto a new Fiber app.
// publisher may be nil, in which case no events are sent.
func NewApp(orderRepo repositories.OrderRepository, publisher services.EventPublisher) *fiber.App {
	orderService := services.NewOrderService(orderRepo, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New(fiber.Config{
		AppName: "Order Service",
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())

	app.Get("/health", handlers.HandleHealth)

	apiV1 := app.Group("/api/v1")
	orderHandler.RegisterRoutes(apiV1)

	return app
}
