package repositories

import (
	"context"
	"errors"
	"fmt"

	"orderservice/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
// Each call runs on its own session bound to the caller's context.
type GORMOrderRepository struct {
	db  *gorm.DB
	now Clock
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db:  db,
		now: SystemClock,
	}
}

// WithClock replaces the clock used for UpdatedAt.
func (r *GORMOrderRepository) WithClock(now Clock) *GORMOrderRepository {
	r.now = now
	return r
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order only if it is owned by userID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns every order owned by userID, oldest first.
func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Update applies the fields present in patch and writes every column of the existing row.
func (r *GORMOrderRepository) Update(ctx context.Context, order *models.Order, patch models.OrderUpdate) (*models.Order, error) {
	updated := *order
	updated.Apply(patch)
	updated.UpdatedAt = nextUpdate(r.now, order.UpdatedAt)

	// Updates never inserts, so a row deleted since it was read stays deleted.
	res := r.db.WithContext(ctx).
		Model(&updated).
		Where("user_id = ?", order.UserID).
		Select("*").
		Updates(&updated)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order with ID %s: %w", order.ID, ErrOrderNotFound)
	}
	return &updated, nil
}

// Delete permanently removes the order.
func (r *GORMOrderRepository) Delete(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", order.UserID).
		Delete(&models.Order{}, "id = ?", order.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrOrderNotFound)
	}
	return nil
}
