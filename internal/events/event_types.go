package events

import (
	"time"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventUserUpdated        EventType = "user_updated"
	EventUserDeleted        EventType = "user_deleted"
	EventTaskAssigned       EventType = "task_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   int64              `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID      int64     `json:"task_id"`
	PlantID     int64     `json:"plant_id"`
	CaretakerID int64     `json:"caretaker_id"`
	Scheduled   time.Time `json:"scheduled"`
}
