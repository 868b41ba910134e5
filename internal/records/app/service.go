package app

import (
	"context"
	"log/slog"

	"github.com/dejobratic/shop/internal/records/app/commands"
	"github.com/dejobratic/shop/internal/records/app/queries"
	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/metrics"
	"github.com/dejobratic/shop/internal/records/ports"
)

// Service bundles the record store use cases behind one facade.
type Service struct {
	idemStore ports.IdempotencyStore

	createUser         *commands.CreateUserCommandHandler
	createProfile      *commands.CreateUserProfileCommandHandler
	addProduct         *commands.AddProductCommandHandler
	updateProductStock *commands.UpdateProductStockCommandHandler
	placeOrder         commands.PlaceOrderHandler
	updateOrderStatus  *commands.UpdateOrderStatusCommandHandler

	getUser    *queries.GetUserQueryHandler
	getProduct *queries.GetProductQueryHandler
	getOrder   *queries.GetOrderQueryHandler
	getProfile *queries.GetUserProfileQueryHandler
}

// NewService wires required dependencies. Order placement is wrapped with
// the observable decorator since it is the one multi-effect operation.
func NewService(
	store ports.RecordStore,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	placeOrder := commands.NewPlaceOrderCommandHandler(store, events)

	return &Service{
		idemStore:          idem,
		createUser:         commands.NewCreateUserCommandHandler(store, events),
		createProfile:      commands.NewCreateUserProfileCommandHandler(store),
		addProduct:         commands.NewAddProductCommandHandler(store, events),
		updateProductStock: commands.NewUpdateProductStockCommandHandler(store),
		placeOrder:         commands.NewObservablePlaceOrderHandler(placeOrder, logger, metrics),
		updateOrderStatus:  commands.NewUpdateOrderStatusCommandHandler(store, events),
		getUser:            queries.NewGetUserQueryHandler(store),
		getProduct:         queries.NewGetProductQueryHandler(store),
		getOrder:           queries.NewGetOrderQueryHandler(store),
		getProfile:         queries.NewGetUserProfileQueryHandler(store),
	}
}

// CreateUserInput captures the payload for creating a user.
type CreateUserInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Wallet string `json:"wallet"`
}

// CreateProfileInput captures the address payload for a user profile.
type CreateProfileInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// AddProductInput captures the payload for adding a product.
type AddProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Owner       string `json:"owner"`
}

// PlaceOrderInput captures the payload for placing an order.
type PlaceOrderInput struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	return s.createUser.Handle(ctx, commands.CreateUserCommand{
		Name:   input.Name,
		Email:  input.Email,
		Wallet: input.Wallet,
	})
}

func (s *Service) CreateUserProfile(ctx context.Context, userID int64, input CreateProfileInput) (domain.UserProfile, error) {
	return s.createProfile.Handle(ctx, commands.CreateUserProfileCommand{
		UserID:  userID,
		Street:  input.Street,
		City:    input.City,
		State:   input.State,
		ZipCode: input.ZipCode,
		Country: input.Country,
	})
}

func (s *Service) AddProduct(ctx context.Context, input AddProductInput) (domain.Product, error) {
	return s.addProduct.Handle(ctx, commands.AddProductCommand{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Owner:       input.Owner,
	})
}

func (s *Service) UpdateProductStock(ctx context.Context, productID, newStock int64) (domain.Product, error) {
	return s.updateProductStock.Handle(ctx, commands.UpdateProductStockCommand{
		ProductID: productID,
		NewStock:  newStock,
	})
}

func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (domain.Order, error) {
	return s.placeOrder.Handle(ctx, commands.PlaceOrderCommand{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	return s.updateOrderStatus.Handle(ctx, commands.UpdateOrderStatusCommand{
		OrderID: orderID,
		Status:  status,
	})
}

func (s *Service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.getUser.Handle(ctx, queries.GetUserQuery{UserID: id})
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.getProduct.Handle(ctx, queries.GetProductQuery{ProductID: id})
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

func (s *Service) GetUserProfile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	return s.getProfile.Handle(ctx, queries.GetUserProfileQuery{UserID: userID})
}

// GetOrderStatus returns the status of an order, or the empty string when
// the order does not exist.
func (s *Service) GetOrderStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// IsUserActive reports the active flag; false for a missing user.
func (s *Service) IsUserActive(ctx context.Context, userID int64) (bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

// GetProductAvailability reports the derived availability flag; false for
// a missing product.
func (s *Service) GetProductAvailability(ctx context.Context, productID int64) (bool, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	return product.IsAvailable, nil
}

// GetTotalOrdersByUser returns the profile order counter; zero when the
// user has no profile.
func (s *Service) GetTotalOrdersByUser(ctx context.Context, userID int64) (int64, error) {
	profile, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.TotalOrders, nil
}

// GetLoyaltyPoints returns the accumulated loyalty points; zero when the
// user has no profile.
func (s *Service) GetLoyaltyPoints(ctx context.Context, userID int64) (int64, error) {
	profile, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.LoyaltyPoints, nil
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
