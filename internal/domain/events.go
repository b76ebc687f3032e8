package domain

import "time"

type OrderStatusEvent struct {
	EventType string      `json:"event_type"`
	OrderID   string      `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	DasherID  string      `json:"dasher_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced        = "order.placed"
	EventOrderAccepted      = "order.accepted"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDelivered     = "order.delivered"
	EventOrderCancelled     = "order.cancelled"
)
