package commands

import (
	"context"
	"fmt"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

type PlaceOrderCommand struct {
	UserID    int64
	ProductID int64
	Quantity  int64
}

func (c PlaceOrderCommand) Validate() error {
	if c.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidState)
	}
	return nil
}

// PlaceOrderHandler is the contract the observable decorator wraps.
type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (domain.Order, error)
}

type PlaceOrderCommandHandler struct {
	store  ports.RecordStore
	events ports.EventBus
}

func NewPlaceOrderCommandHandler(store ports.RecordStore, events ports.EventBus) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{store: store, events: events}
}

// Handle places the order. The store applies the coupled side effects
// (order insert, stock decrement, profile counters) atomically; the event
// publishes only after that commit, and never when the store rejects the
// call.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Order{}, err
	}

	order, err := h.store.PlaceOrder(ctx, cmd.UserID, cmd.ProductID, cmd.Quantity)
	if err != nil {
		return domain.Order{}, err
	}

	if err := h.events.PublishOrderPlaced(ctx, order.ID, order.UserID, order.ProductID); err != nil {
		return order, fmt.Errorf("order placed but failed to publish event: %w", err)
	}

	return order, nil
}
