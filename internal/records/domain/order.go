package domain

import "time"

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses. No transition
// graph is enforced: any known status may follow any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order records a purchase of a product by a user. TotalPrice is computed
// once at placement from the product price at that moment and never
// recalculated. DeliveryDate stays zero until the order transitions into
// delivered; every such transition stamps it anew.
type Order struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	ProductID    int64       `json:"product_id"`
	Quantity     int64       `json:"quantity"`
	TotalPrice   int64       `json:"total_price"`
	Status       OrderStatus `json:"status"`
	OrderDate    time.Time   `json:"order_date"`
	DeliveryDate time.Time   `json:"delivery_date,omitzero"`
}

// Exists reports whether the record refers to a stored order.
func (o Order) Exists() bool {
	return o.ID != 0
}
