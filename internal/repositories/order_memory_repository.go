package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"orderservice/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[uuid.UUID]models.Order
	mu     sync.RWMutex
	now    Clock
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uuid.UUID]models.Order),
		now:    SystemClock,
	}
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

// GetByID returns an order if it exists and is owned by userID.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id, userID uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	order = cloneOrder(order)
	return &order, nil
}

// ListByUser returns all orders owned by userID, oldest first.
func (r *MemoryOrderRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, cloneOrder(order))
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.Before(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// Update applies the patch to a stored order.
func (r *MemoryOrderRepository) Update(_ context.Context, order *models.Order, patch models.OrderUpdate) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok || stored.UserID != order.UserID {
		return nil, fmt.Errorf("order with ID %s: %w", order.ID, ErrOrderNotFound)
	}
	updated := cloneOrder(*order)
	updated.Apply(patch)
	updated.UpdatedAt = nextUpdate(r.now, order.UpdatedAt)
	r.orders[order.ID] = cloneOrder(updated)
	return &updated, nil
}

// Delete removes an order.
func (r *MemoryOrderRepository) Delete(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok || stored.UserID != order.UserID {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrOrderNotFound)
	}
	delete(r.orders, order.ID)
	return nil
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
