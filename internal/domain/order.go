package domain

import "time"

// OrderStatus enumerates fulfilment states. Transitions happen only via
// explicit admin updates.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the durable record created from a cart snapshot. TotalAmount is
// fixed at placement time and never recomputed.
type Order struct {
	ID              int64
	CustomerID      int64
	TotalAmount     float64
	DeliveryAddress string
	Status          OrderStatus
	OrderDate       time.Time

	// Denormalized listing fields, populated by joined queries.
	ItemCount  int
	PlantNames string
	Customer   *Identity
}

// OrderItem is one line of an order. Price is the plant's price at placement
// time; the row is immutable once written.
type OrderItem struct {
	ID       int64
	OrderID  int64
	PlantID  int64
	Quantity int
	Price    float64

	PlantName string
	ImageURL  string
}

// Subtotal is quantity times the snapshot price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}
