package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/shop/internal/database"
	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
	"github.com/dejobratic/shop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableStore wraps a RecordStore with tracing and query metrics. It
// adds no semantics of its own; failures and zero-record misses pass
// through untouched.
type ObservableStore struct {
	store   ports.RecordStore
	metrics *database.Metrics
}

var _ ports.RecordStore = (*ObservableStore)(nil)

func NewObservableStore(store ports.RecordStore, metrics *database.Metrics) *ObservableStore {
	return &ObservableStore{
		store:   store,
		metrics: metrics,
	}
}

func (s *ObservableStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.CreateUser")
	defer span.End()

	start := time.Now()
	created, err := s.store.CreateUser(ctx, user)
	s.metrics.RecordQuery(ctx, "create_user", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.User{}, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int64("user.id", created.ID))
	telemetry.SetSpanSuccess(span)
	return created, nil
}

func (s *ObservableStore) CreateUserProfile(ctx context.Context, userID int64, address domain.Address) (domain.UserProfile, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.CreateUserProfile")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.Int64("user.id", userID))

	start := time.Now()
	profile, err := s.store.CreateUserProfile(ctx, userID, address)
	s.metrics.RecordQuery(ctx, "create_user_profile", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.UserProfile{}, err
	}

	telemetry.SetSpanSuccess(span)
	return profile, nil
}

func (s *ObservableStore) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.AddProduct")
	defer span.End()

	start := time.Now()
	added, err := s.store.AddProduct(ctx, product)
	s.metrics.RecordQuery(ctx, "add_product", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Product{}, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int64("product.id", added.ID),
		attribute.Bool("product.available", added.IsAvailable),
	)
	telemetry.SetSpanSuccess(span)
	return added, nil
}

func (s *ObservableStore) UpdateProductStock(ctx context.Context, productID, newStock int64) (domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.UpdateProductStock")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("product.id", productID),
		attribute.Int64("product.new_stock", newStock),
	)

	start := time.Now()
	product, err := s.store.UpdateProductStock(ctx, productID, newStock)
	s.metrics.RecordQuery(ctx, "update_product_stock", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Product{}, err
	}

	telemetry.SetSpanSuccess(span)
	return product, nil
}

func (s *ObservableStore) PlaceOrder(ctx context.Context, userID, productID, quantity int64) (domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.PlaceOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.user_id", userID),
		attribute.Int64("order.product_id", productID),
		attribute.Int64("order.quantity", quantity),
	)

	start := time.Now()
	order, err := s.store.PlaceOrder(ctx, userID, productID, quantity)
	s.metrics.RecordQuery(ctx, "place_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Order{}, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int64("order.id", order.ID))
	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (s *ObservableStore) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.UpdateOrderStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.String("order.new_status", string(status)),
	)

	start := time.Now()
	order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	s.metrics.RecordQuery(ctx, "update_order_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Order{}, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (s *ObservableStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.GetUser")
	defer span.End()

	start := time.Now()
	user, err := s.store.GetUser(ctx, id)
	s.metrics.RecordQuery(ctx, "get_user", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.User{}, err
	}

	telemetry.SetSpanSuccess(span)
	return user, nil
}

func (s *ObservableStore) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.GetProduct")
	defer span.End()

	start := time.Now()
	product, err := s.store.GetProduct(ctx, id)
	s.metrics.RecordQuery(ctx, "get_product", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Product{}, err
	}

	telemetry.SetSpanSuccess(span)
	return product, nil
}

func (s *ObservableStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.GetOrder")
	defer span.End()

	start := time.Now()
	order, err := s.store.GetOrder(ctx, id)
	s.metrics.RecordQuery(ctx, "get_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.Order{}, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (s *ObservableStore) GetUserProfile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	ctx, span := telemetry.StartSpan(ctx, "RecordStore.GetUserProfile")
	defer span.End()

	start := time.Now()
	profile, err := s.store.GetUserProfile(ctx, userID)
	s.metrics.RecordQuery(ctx, "get_user_profile", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return domain.UserProfile{}, err
	}

	telemetry.SetSpanSuccess(span)
	return profile, nil
}
