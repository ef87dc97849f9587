package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/repository"
)

// fakeOrderRepository returns canned results and records calls.
type fakeOrderRepository struct {
	placeErr    error
	placed      *domain.Order
	placeCalls  int
	statusCalls int
	details     *domain.Order
}

func (f *fakeOrderRepository) PlaceOrder(_ context.Context, customerID int64, deliveryAddress string) (*domain.Order, error) {
	f.placeCalls++
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	order := f.placed
	if order == nil {
		order = &domain.Order{ID: 1, CustomerID: customerID, DeliveryAddress: deliveryAddress}
	}
	return order, nil
}

func (f *fakeOrderRepository) ListByCustomer(context.Context, int64) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) GetByIDAndCustomer(context.Context, int64, int64) (*domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) ListAll(context.Context) ([]domain.Order, error) { return nil, nil }

func (f *fakeOrderRepository) ListByStatus(context.Context, domain.OrderStatus) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) GetDetails(context.Context, int64) (*domain.Order, error) {
	return f.details, nil
}

func (f *fakeOrderRepository) UpdateStatus(context.Context, int64, domain.OrderStatus) error {
	f.statusCalls++
	return nil
}

func (f *fakeOrderRepository) ItemsByOrder(context.Context, int64) ([]domain.OrderItem, error) {
	return nil, nil
}

func TestPlaceOrder_RequiresAddress(t *testing.T) {
	repo := &fakeOrderRepository{}
	svc := NewOrderService(repo, nil)

	_, err := svc.Place(context.Background(), 1, "   ")
	require.Error(t, err)
	assert.Zero(t, repo.placeCalls, "store must not be touched when the address is missing")
}

func TestPlaceOrder_EmptyCartSentinel(t *testing.T) {
	repo := &fakeOrderRepository{placeErr: repository.ErrEmptyCart}
	svc := NewOrderService(repo, nil)

	_, err := svc.Place(context.Background(), 1, "12 Fern Street")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_InsufficientStockBecomesValidation(t *testing.T) {
	repo := &fakeOrderRepository{placeErr: repository.ErrInsufficientStock}
	svc := NewOrderService(repo, nil)

	_, err := svc.Place(context.Background(), 1, "12 Fern Street")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrInsufficientStock, "driver sentinel must not leak to callers")
	assert.Contains(t, err.Error(), "stock")
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	repo := &fakeOrderRepository{
		placed: &domain.Order{ID: 9, CustomerID: 1, TotalAmount: 30, ItemCount: 2},
	}
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventOrderPlaced, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	svc := NewOrderService(repo, dispatcher)
	order, err := svc.Place(context.Background(), 1, "12 Fern Street")
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.OrderPlacedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(9), payload.OrderID)
	assert.InDelta(t, 30.0, payload.TotalAmount, 0.001)
	assert.Equal(t, 2, payload.ItemCount)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &fakeOrderRepository{details: &domain.Order{ID: 5, Status: domain.OrderStatusPending}}
	svc := NewOrderService(repo, nil)

	err := svc.UpdateStatus(context.Background(), 5, domain.OrderStatus("teleported"))
	require.Error(t, err)
	assert.Zero(t, repo.statusCalls)
}

func TestUpdateStatus_PublishesTransition(t *testing.T) {
	repo := &fakeOrderRepository{
		details: &domain.Order{ID: 5, CustomerID: 3, Status: domain.OrderStatusPending},
	}
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventOrderStatusChanged, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	svc := NewOrderService(repo, dispatcher)
	require.NoError(t, svc.UpdateStatus(context.Background(), 5, domain.OrderStatusShipped))

	assert.Equal(t, 1, repo.statusCalls)
	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPending, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusShipped, payload.NewStatus)
}

func TestAdminList_ValidatesStatusFilter(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepository{}, nil)

	_, err := svc.AdminList(context.Background(), domain.OrderStatus("bogus"))
	assert.Error(t, err)

	_, err = svc.AdminList(context.Background(), "")
	assert.NoError(t, err)
}
