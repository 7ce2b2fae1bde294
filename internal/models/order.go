package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultOrderStatus is assigned when a create payload omits status or sends null.
const DefaultOrderStatus = "pending"

// OrderItem represents a single line within an order. Items are stored as a
// JSON blob on the order row, not as rows of their own.
type OrderItem struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gt=0"` // Price at the time of order
}

// Order represents a customer order. It is owned by exactly one user.
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;index;not null"`
	Items       []OrderItem `json:"items" gorm:"type:json;serializer:json;not null"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Status      string      `json:"status" gorm:"size:50;not null"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime:false;not null"`
}

// OrderCreate is the payload accepted when placing a new order.
// The owner, id and timestamps are never taken from the client.
type OrderCreate struct {
	Items       []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64     `json:"total_amount" validate:"gt=0"`
	Status      *string     `json:"status" validate:"omitnil,max=50"`
}

// OrderUpdate is a partial update. Only fields present in the payload are
// applied; an explicit null counts as absent.
type OrderUpdate struct {
	Items       Optional[[]OrderItem] `json:"items"`
	TotalAmount Optional[float64]     `json:"total_amount"`
	Status      Optional[string]      `json:"status"`
}

// NewOrder builds an order owned by userID from a validated create payload.
func NewOrder(input OrderCreate, userID uuid.UUID, now time.Time) *Order {
	status := DefaultOrderStatus
	if input.Status != nil {
		status = *input.Status
	}
	items := make([]OrderItem, len(input.Items))
	copy(items, input.Items)

	return &Order{
		ID:          uuid.New(),
		UserID:      userID,
		Items:       items,
		TotalAmount: input.TotalAmount,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply copies every field present in patch onto the order.
// It does not touch UpdatedAt; the caller owns the clock.
func (o *Order) Apply(patch OrderUpdate) {
	if items, ok := patch.Items.Get(); ok {
		o.Items = make([]OrderItem, len(items))
		copy(o.Items, items)
	}
	if total, ok := patch.TotalAmount.Get(); ok {
		o.TotalAmount = total
	}
	if status, ok := patch.Status.Get(); ok {
		o.Status = status
	}
}
