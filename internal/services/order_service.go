package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderservice/internal/models"
	"orderservice/internal/repositories"
	"orderservice/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Order event types published after a successful write.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// EventPublisher delivers order lifecycle events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderEvent is the message body sent for every lifecycle event.
type OrderEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	now       repositories.Clock
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		now:       repositories.SystemClock,
	}
}

// CreateOrder validates the payload and stores a new order owned by userID.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, input models.OrderCreate) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	order := models.NewOrder(input, userID, s.now())
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	logger.Info("order created", zap.Stringer("order_id", order.ID), zap.Stringer("user_id", userID))
	s.publish(EventOrderCreated, order)
	return order, nil
}

// ListOrders returns every order owned by userID. An empty result is not an error here.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// GetOrder returns the order only if userID owns it.
func (s *OrderService) GetOrder(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id, userID)
}

// UpdateOrder applies a partial update to an order owned by userID.
// The payload is validated before the store is touched.
func (s *OrderService) UpdateOrder(ctx context.Context, id, userID uuid.UUID, patch models.OrderUpdate) (*models.Order, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.orderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.Update(ctx, existing, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}

	logger.Info("order updated", zap.Stringer("order_id", id), zap.Stringer("user_id", userID))
	s.publish(EventOrderUpdated, updated)
	return updated, nil
}

// DeleteOrder permanently removes an order owned by userID.
func (s *OrderService) DeleteOrder(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.orderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, existing); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}

	logger.Info("order deleted", zap.Stringer("order_id", id), zap.Stringer("user_id", userID))
	s.publish(EventOrderDeleted, existing)
	return nil
}

// publish is best effort: the write has already committed, so failures are only logged.
func (s *OrderService) publish(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(OrderEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  s.now(),
	})
	if err != nil {
		logger.Warn("failed to marshal order event", zap.String("event", eventType), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(eventType, body); err != nil {
		logger.Warn("failed to publish order event",
			zap.String("event", eventType),
			zap.Stringer("order_id", order.ID),
			zap.Error(err))
	}
}
