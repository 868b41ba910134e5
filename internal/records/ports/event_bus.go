package ports

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
)

// EventBus defines the contract for publishing record lifecycle events.
// Each event fires exactly once per successful operation, after all state
// for that operation is committed, and never on a failed call.
type EventBus interface {
	PublishUserCreated(ctx context.Context, userID int64, name, wallet string) error
	PublishProductAdded(ctx context.Context, productID int64, name string, price int64) error
	PublishOrderPlaced(ctx context.Context, orderID, userID, productID int64) error
	PublishOrderStatusUpdated(ctx context.Context, orderID int64, status domain.OrderStatus) error
}
