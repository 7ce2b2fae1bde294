package handlers

import (
	"orderservice/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

func invalidBody(c *fiber.Ctx, err error) error {
	logger.Debug("error parsing request body", zap.String("path", utils.CopyString(c.Path())), zap.Error(err))
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}

func invalidOrderID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Order ID must be a valid UUID",
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
	})
}

// HandleHealth is a static liveness probe. It checks no dependencies.
func HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Order Service is healthy.",
	})
}
