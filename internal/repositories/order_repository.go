package repositories

import (
	"context"
	"errors"
	"time"

	"orderservice/internal/models"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist or belongs to another user.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines owner-scoped data access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order, patch models.OrderUpdate) (*models.Order, error)
	Delete(ctx context.Context, order *models.Order) error
}

// Clock returns the current time. Repositories use it to stamp UpdatedAt.
type Clock func() time.Time

// SystemClock is UTC wall time at the store's microsecond precision.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdate returns a timestamp strictly after prev.
func nextUpdate(now Clock, prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
