package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"orderservice/internal/models"
	"orderservice/internal/repositories"
	"orderservice/internal/services"
	"orderservice/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order, patch models.OrderUpdate) (*models.Order, error) {
	args := m.Called(ctx, order, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	m.Run()
}

func validCreate() models.OrderCreate {
	return models.OrderCreate{
		Items: []models.OrderItem{
			{ProductID: uuid.NewString(), Name: "Widget", Quantity: 2, Price: 9.99},
		},
		TotalAmount: 19.98,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockMQ)
	userID := uuid.New()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockMQ.On("Publish", services.EventOrderCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.OrderEvent
		return json.Unmarshal(body, &event) == nil && event.UserID == userID && event.Status == "pending"
	})).Return(nil).Once()

	order, err := service.CreateOrder(ctx, userID, validCreate())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_CreateOrderValidationSkipsStore(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	input := validCreate()
	input.Items[0].Quantity = 0

	_, err := service.CreateOrder(context.Background(), uuid.New(), input)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].quantity")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrderPublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockMQ)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockMQ.On("Publish", services.EventOrderCreated, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := service.CreateOrder(ctx, uuid.New(), validCreate())
	assert.NoError(t, err)
	assert.NotNil(t, order)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_CreateOrderStoreError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockMQ)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := service.CreateOrder(ctx, uuid.New(), validCreate())
	assert.Error(t, err)
	mockMQ.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	userID := uuid.New()

	expected := []models.Order{{ID: uuid.New(), UserID: userID}}
	mockRepo.On("ListByUser", ctx, userID).Return(expected, nil).Once()

	orders, err := service.ListOrders(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockMQ)
	userID := uuid.New()

	existing := &models.Order{ID: uuid.New(), UserID: userID, Status: "pending", TotalAmount: 10, UpdatedAt: time.Now()}
	patch := models.OrderUpdate{Status: models.Some("shipped")}
	updated := *existing
	updated.Status = "shipped"

	mockRepo.On("GetByID", ctx, existing.ID, userID).Return(existing, nil).Once()
	mockRepo.On("Update", ctx, existing, patch).Return(&updated, nil).Once()
	mockMQ.On("Publish", services.EventOrderUpdated, mock.Anything).Return(nil).Once()

	got, err := service.UpdateOrder(ctx, existing.ID, userID, patch)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_UpdateOrderNotOwned(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	id, userID := uuid.New(), uuid.New()

	mockRepo.On("GetByID", ctx, id, userID).
		Return(nil, fmt.Errorf("order with ID %s: %w", id, repositories.ErrOrderNotFound)).Once()

	_, err := service.UpdateOrder(ctx, id, userID, models.OrderUpdate{Status: models.Some("shipped")})
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderValidationSkipsStore(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	_, err := service.UpdateOrder(context.Background(), uuid.New(), uuid.New(),
		models.OrderUpdate{TotalAmount: models.Some(-5.0)})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockMQ)
	userID := uuid.New()
	existing := &models.Order{ID: uuid.New(), UserID: userID}

	mockRepo.On("GetByID", ctx, existing.ID, userID).Return(existing, nil).Once()
	mockRepo.On("Delete", ctx, existing).Return(nil).Once()
	mockMQ.On("Publish", services.EventOrderDeleted, mock.Anything).Return(nil).Once()

	assert.NoError(t, service.DeleteOrder(ctx, existing.ID, userID))
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_DeleteOrderNotOwned(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	id, userID := uuid.New(), uuid.New()

	mockRepo.On("GetByID", ctx, id, userID).Return(nil, repositories.ErrOrderNotFound).Once()

	assert.ErrorIs(t, service.DeleteOrder(ctx, id, userID), repositories.ErrOrderNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
