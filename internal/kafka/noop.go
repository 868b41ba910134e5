package kafka

import (
	"context"
	"log/slog"

	"github.com/dejobratic/shop/internal/records/domain"
)

// NoopEventBus logs events without sending them to Kafka. Useful for local
// dev before wiring a real producer.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishUserCreated(_ context.Context, userID int64, name, wallet string) error {
	slog.Debug("event::user_created", "user_id", userID, "name", name, "wallet", wallet)
	return nil
}

func (n *NoopEventBus) PublishProductAdded(_ context.Context, productID int64, name string, price int64) error {
	slog.Debug("event::product_added", "product_id", productID, "name", name, "price", price)
	return nil
}

func (n *NoopEventBus) PublishOrderPlaced(_ context.Context, orderID, userID, productID int64) error {
	slog.Debug("event::order_placed", "order_id", orderID, "user_id", userID, "product_id", productID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusUpdated(_ context.Context, orderID int64, status domain.OrderStatus) error {
	slog.Debug("event::order_status_updated", "order_id", orderID, "status", status)
	return nil
}
