package commands_test

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
)

type mockStore struct {
	createUserFn         func(ctx context.Context, user domain.User) (domain.User, error)
	createUserProfileFn  func(ctx context.Context, userID int64, address domain.Address) (domain.UserProfile, error)
	addProductFn         func(ctx context.Context, product domain.Product) (domain.Product, error)
	updateProductStockFn func(ctx context.Context, productID, newStock int64) (domain.Product, error)
	placeOrderFn         func(ctx context.Context, userID, productID, quantity int64) (domain.Order, error)
	updateOrderStatusFn  func(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error)
}

func (m *mockStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	user.ID = 1
	user.IsActive = true
	return user, nil
}

func (m *mockStore) CreateUserProfile(ctx context.Context, userID int64, address domain.Address) (domain.UserProfile, error) {
	if m.createUserProfileFn != nil {
		return m.createUserProfileFn(ctx, userID, address)
	}
	return domain.UserProfile{UserID: userID, Address: address}, nil
}

func (m *mockStore) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if m.addProductFn != nil {
		return m.addProductFn(ctx, product)
	}
	product.ID = 1
	product.IsAvailable = product.Stock > 0
	return product, nil
}

func (m *mockStore) UpdateProductStock(ctx context.Context, productID, newStock int64) (domain.Product, error) {
	if m.updateProductStockFn != nil {
		return m.updateProductStockFn(ctx, productID, newStock)
	}
	return domain.Product{ID: productID, Stock: newStock, IsAvailable: newStock > 0}, nil
}

func (m *mockStore) PlaceOrder(ctx context.Context, userID, productID, quantity int64) (domain.Order, error) {
	if m.placeOrderFn != nil {
		return m.placeOrderFn(ctx, userID, productID, quantity)
	}
	return domain.Order{ID: 1, UserID: userID, ProductID: productID, Quantity: quantity, Status: domain.StatusPending}, nil
}

func (m *mockStore) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	if m.updateOrderStatusFn != nil {
		return m.updateOrderStatusFn(ctx, orderID, status)
	}
	return domain.Order{ID: orderID, Status: status}, nil
}

func (m *mockStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return domain.User{}, nil
}

func (m *mockStore) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return domain.Product{}, nil
}

func (m *mockStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return domain.Order{}, nil
}

func (m *mockStore) GetUserProfile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	return domain.UserProfile{}, nil
}

type mockEventBus struct {
	publishUserCreatedFn        func(ctx context.Context, userID int64, name, wallet string) error
	publishProductAddedFn       func(ctx context.Context, productID int64, name string, price int64) error
	publishOrderPlacedFn        func(ctx context.Context, orderID, userID, productID int64) error
	publishOrderStatusUpdatedFn func(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

func (m *mockEventBus) PublishUserCreated(ctx context.Context, userID int64, name, wallet string) error {
	if m.publishUserCreatedFn != nil {
		return m.publishUserCreatedFn(ctx, userID, name, wallet)
	}
	return nil
}

func (m *mockEventBus) PublishProductAdded(ctx context.Context, productID int64, name string, price int64) error {
	if m.publishProductAddedFn != nil {
		return m.publishProductAddedFn(ctx, productID, name, price)
	}
	return nil
}

func (m *mockEventBus) PublishOrderPlaced(ctx context.Context, orderID, userID, productID int64) error {
	if m.publishOrderPlacedFn != nil {
		return m.publishOrderPlacedFn(ctx, orderID, userID, productID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderStatusUpdated(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if m.publishOrderStatusUpdatedFn != nil {
		return m.publishOrderStatusUpdatedFn(ctx, orderID, status)
	}
	return nil
}
