// Package memory holds the reference in-memory record store. It is the
// canonical implementation of the store semantics; the postgres adapter
// mirrors it.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// Store keeps all entity tables and id counters behind a single RWMutex.
// Mutators take the write lock, so mutations are totally ordered and each
// multi-step operation (chiefly PlaceOrder) is atomic; readers take the
// read lock and can run concurrently with each other.
type Store struct {
	mu sync.RWMutex

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64

	users    map[int64]domain.User
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	profiles map[int64]domain.UserProfile
}

var _ ports.RecordStore = (*Store)(nil)

// NewStore constructs an empty store. Id counters start at 1; 0 is the
// absence sentinel and is never assigned.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
		profiles: make(map[int64]domain.UserProfile),
	}
}

// CreateUser stores a new active user and returns it with its assigned id.
func (s *Store) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user.ID = s.nextUserID
	user.RegistrationDate = time.Now().UTC()
	user.IsActive = true

	s.users[user.ID] = user
	return user, nil
}

// CreateUserProfile snapshots the current user record into a fresh profile,
// replacing any existing profile for that user and zeroing its counters.
func (s *Store) CreateUserProfile(_ context.Context, userID int64, address domain.Address) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	profile := domain.UserProfile{
		UserID:  userID,
		User:    user,
		Address: address,
	}
	s.profiles[userID] = profile
	return profile, nil
}

// AddProduct stores a new product, deriving availability from its stock.
func (s *Store) AddProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product.ID = s.nextProductID
	product.IsAvailable = domain.AvailableFor(product.Stock)

	s.products[product.ID] = product
	return product, nil
}

// UpdateProductStock overwrites the stock unconditionally and recomputes
// the availability flag. There is no floor check against outstanding
// orders.
func (s *Store) UpdateProductStock(_ context.Context, productID, newStock int64) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	product.Stock = newStock
	product.IsAvailable = domain.AvailableFor(newStock)
	s.products[productID] = product
	return product, nil
}

// PlaceOrder applies the one multi-effect operation as a single atomic
// unit: order insert, stock decrement, availability recompute, and profile
// counter updates all happen under the same critical section, or nothing
// happens at all. Preconditions are checked in a fixed order before any
// write.
func (s *Store) PlaceOrder(_ context.Context, userID, productID, quantity int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.Order{}, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	product, ok := s.products[productID]
	if !ok {
		return domain.Order{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	if product.Stock < quantity {
		return domain.Order{}, fmt.Errorf("product %d has stock %d, need %d: %w",
			productID, product.Stock, quantity, domain.ErrInvalidState)
	}

	if !product.IsAvailable {
		return domain.Order{}, fmt.Errorf("product %d is not available: %w", productID, domain.ErrInvalidState)
	}

	s.nextOrderID++
	order := domain.Order{
		ID:         s.nextOrderID,
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: product.Price * quantity,
		Status:     domain.StatusPending,
		OrderDate:  time.Now().UTC(),
	}
	s.orders[order.ID] = order

	product.Stock -= quantity
	product.IsAvailable = domain.AvailableFor(product.Stock)
	s.products[productID] = product

	if profile, ok := s.profiles[userID]; ok {
		profile.TotalOrders++
		profile.LoyaltyPoints += quantity * domain.LoyaltyPointsPerUnit
		s.profiles[userID] = profile
	}

	return order, nil
}

// UpdateOrderStatus sets the status unconditionally; no transition graph
// is enforced. Every transition into delivered stamps the delivery date,
// including a repeated one.
func (s *Store) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}

	order.Status = status
	if status == domain.StatusDelivered {
		order.DeliveryDate = time.Now().UTC()
	}
	s.orders[orderID] = order
	return order, nil
}

// GetUser returns the user, or the zero-valued record when the id is
// absent. Callers distinguish a miss by ID == 0.
func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id], nil
}

// GetProduct returns the product, or the zero-valued record on a miss.
func (s *Store) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[id], nil
}

// GetOrder returns the order, or the zero-valued record on a miss.
func (s *Store) GetOrder(_ context.Context, id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[id], nil
}

// GetUserProfile returns the profile, or the zero-valued record on a miss.
func (s *Store) GetUserProfile(_ context.Context, userID int64) (domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[userID], nil
}
