package domain

import (
	"strings"
	"time"
)

// Order statuses as reported by the API. The server owns the lifecycle;
// these are display values, not a client-side state machine.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        ID       `json:"id,omitempty"`
	ProductID ID       `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Order is a placed order as returned by /order/me and /order/{id}.
type Order struct {
	ID         ID          `json:"id"`
	Status     string      `json:"status"`
	TotalPrice float64     `json:"totalPrice"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items,omitempty"`
}

// CanCancel reports whether the order is still in a cancellable state.
// Cancelled, refunded, delivered and completed orders cannot be cancelled.
func (o Order) CanCancel() bool {
	switch strings.ToLower(o.Status) {
	case OrderCancelled, OrderRefunded, OrderDelivered, OrderCompleted:
		return false
	}
	return true
}
