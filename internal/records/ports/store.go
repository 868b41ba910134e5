package ports

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
)

// RecordStore owns the entity tables and id counters and enforces every
// cross-entity invariant synchronously inside each operation.
//
// Mutations against a store instance are serialized: no two mutating calls
// interleave, and each call either applies fully or fails before any write.
// Reads may run concurrently but never observe a partial mutation. A read
// for a missing id returns the zero-valued record and a nil error; the
// returned error is reserved for infrastructure failures.
type RecordStore interface {
	// CreateUser stores a new user. The store assigns the id and the
	// registration timestamp and marks the user active.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)

	// CreateUserProfile overwrites any existing profile for the user with
	// a fresh snapshot of the current user record, the given address, and
	// zeroed counters. Fails with domain.ErrNotFound if the user does not
	// exist.
	CreateUserProfile(ctx context.Context, userID int64, address domain.Address) (domain.UserProfile, error)

	// AddProduct stores a new product. The store assigns the id and
	// derives the availability flag from the initial stock.
	AddProduct(ctx context.Context, product domain.Product) (domain.Product, error)

	// UpdateProductStock overwrites the stock unconditionally and
	// recomputes availability. Fails with domain.ErrNotFound if the
	// product does not exist.
	UpdateProductStock(ctx context.Context, productID, newStock int64) (domain.Product, error)

	// PlaceOrder validates that the user and product exist, that stock
	// covers the quantity, and that the product is available, then
	// records the order, decrements stock, and updates the user's
	// profile counters if a profile exists. All of it applies as one
	// atomic unit or not at all.
	PlaceOrder(ctx context.Context, userID, productID, quantity int64) (domain.Order, error)

	// UpdateOrderStatus sets the status unconditionally. A transition
	// into delivered stamps the delivery date, again on every repeat.
	// Fails with domain.ErrNotFound if the order does not exist.
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error)

	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	GetUserProfile(ctx context.Context, userID int64) (domain.UserProfile, error)
}
