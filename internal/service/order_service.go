package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// ErrEmptyCart re-exports the repository sentinel so handlers can branch to
// the cart redirect without importing the repository package.
var ErrEmptyCart = repository.ErrEmptyCart

// OrderService coordinates the cart-to-order workflow and the admin order
// surface.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// Place turns the customer's cart into a durable order. The repository runs
// the whole workflow in one transaction; here we gate on the address
// precondition and translate stock failures into a user-facing message.
func (s *OrderService) Place(ctx context.Context, customerID int64, deliveryAddress string) (*domain.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return nil, apperrors.NewValidationError("Delivery address is required", nil)
	}

	order, err := s.orders.PlaceOrder(ctx, customerID, deliveryAddress)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			return nil, ErrEmptyCart
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperrors.NewValidationError("One or more items exceed available stock", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOrderPlaced,
		UserID:    customerID,
		Timestamp: time.Now(),
		Payload: events.OrderPlacedPayload{
			OrderID:     order.ID,
			TotalAmount: order.TotalAmount,
			ItemCount:   order.ItemCount,
		},
	})
	return order, nil
}

// ListForCustomer returns the customer's orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// GetForCustomer fetches an order with its items, enforcing ownership.
func (s *OrderService) GetForCustomer(ctx context.Context, orderID, customerID int64) (*domain.Order, []domain.OrderItem, error) {
	order, err := s.orders.GetByIDAndCustomer(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("order", nil)
		}
		return nil, nil, err
	}
	items, err := s.orders.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// AdminList returns all orders, optionally filtered by status.
func (s *OrderService) AdminList(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" {
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid order status", nil)
		}
		return s.orders.ListByStatus(ctx, status)
	}
	return s.orders.ListAll(ctx)
}

// AdminDetails fetches an order with customer info and items.
func (s *OrderService) AdminDetails(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	order, err := s.orders.GetDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("order", nil)
		}
		return nil, nil, err
	}
	items, err := s.orders.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// UpdateStatus applies an explicit admin transition; there are no automatic
// ones.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("invalid order status", nil)
	}

	order, err := s.orders.GetDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOrderStatusChanged,
		UserID:    order.CustomerID,
		Timestamp: time.Now(),
		Payload: events.OrderStatusChangedPayload{
			OrderID:   orderID,
			OldStatus: order.Status,
			NewStatus: status,
		},
	})
	return nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
