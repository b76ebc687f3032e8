package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "Order Placed"
	StatusAccepted  OrderStatus = "Dasher Assigned"
	StatusAtHall    OrderStatus = "Arrived at Dining Hall"
	StatusInLine    OrderStatus = "In Line for Food"
	StatusPickedUp  OrderStatus = "On The Way"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// statusFlow is the strict forward order of the delivery lifecycle.
// Cancelled sits outside the flow and is reachable only from StatusPlaced.
var statusFlow = []OrderStatus{
	StatusPlaced,
	StatusAccepted,
	StatusAtHall,
	StatusInLine,
	StatusPickedUp,
	StatusDelivered,
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDasher   Role = "dasher"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Index returns the position of s in the lifecycle, or -1 if s is not part
// of the forward flow.
func (s OrderStatus) Index() int {
	for i, st := range statusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.Index() >= 0
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether role may move an order from s to target.
// The lifecycle is one-directional with no skipping: target must be exactly
// one step ahead of s. Every forward step past placement belongs to the
// dasher; the customer may only cancel, and only before a dasher is assigned.
func (s OrderStatus) CanTransition(target OrderStatus, role Role) error {
	if !target.Valid() {
		return ErrUnknownStatus
	}
	if s.Terminal() {
		return ErrInvalidTransition
	}
	if target == StatusCancelled {
		if role != RoleCustomer || s != StatusPlaced {
			return ErrInvalidTransition
		}
		return nil
	}
	if role != RoleDasher {
		return ErrInvalidTransition
	}
	if target.Index() != s.Index()+1 {
		return ErrInvalidTransition
	}
	return nil
}

// CartLine references a menu item by name plus a positive quantity.
type CartLine struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// MergeCartLines collapses duplicate lines (same item name) into one line
// with the summed quantity, preserving first-seen order. Lines with a
// non-positive quantity count as one unit.
func MergeCartLines(lines []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if i, ok := index[line.Name]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.Name] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

type Order struct {
	ID                string      `json:"orderId"`
	CreatedAt         time.Time   `json:"timestamp"`
	Status            OrderStatus `json:"status"`
	DinerName         string      `json:"dinerName"`
	DinerEmail        string      `json:"dinerEmail"`
	DeliveryAddress   string      `json:"deliveryAddress"`
	FromLocation      string      `json:"fromLocation"`
	Items             []CartLine  `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	DeliveryFee       float64     `json:"deliveryFee"`
	Tip               float64     `json:"tip"`
	Total             float64     `json:"total"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
	DasherID          string      `json:"dasherId,omitempty"`
	Active            bool        `json:"-"`
}
