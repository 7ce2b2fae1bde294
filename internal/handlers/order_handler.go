package handlers

import (
	"errors"

	"orderservice/internal/middleware"
	"orderservice/internal/models"
	"orderservice/internal/repositories"
	"orderservice/internal/services"
	"orderservice/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. Every route requires the gateway's user id header.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.RequireUserID())
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleCreateOrder creates a new order for the calling user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var input models.OrderCreate
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), userID, input)
	if err != nil {
		return h.fail(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders lists the calling user's orders.
// An empty result is answered with 404, which existing clients rely on.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	orders, err := h.service.ListOrders(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, "Could not retrieve orders")
	}
	if len(orders) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No orders found for this user.",
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order owned by the caller.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return invalidOrderID(c)
	}

	order, err := h.service.GetOrder(c.UserContext(), orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return notFound(c, "Order not found or you do not have permission to view this order.")
		}
		return h.fail(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleUpdateOrder applies a partial update to an order owned by the caller.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return invalidOrderID(c)
	}

	var patch models.OrderUpdate
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	order, err := h.service.UpdateOrder(c.UserContext(), orderID, userID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return notFound(c, "Order not found or you do not have permission to update this order.")
		}
		return h.fail(c, err, "Could not update order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder permanently deletes an order owned by the caller.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return invalidOrderID(c)
	}

	if err := h.service.DeleteOrder(c.UserContext(), orderID, userID); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return notFound(c, "Order not found or you do not have permission to delete this order.")
		}
		return h.fail(c, err, "Could not delete order")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps validation errors to 422 and everything else to an opaque 500.
func (h *OrderHandler) fail(c *fiber.Ctx, err error, message string) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	logger.Error(message, zap.String("path", utils.CopyString(c.Path())), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}

func orderIDParam(c *fiber.Ctx) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Params("id"))
	return orderID, err == nil
}
