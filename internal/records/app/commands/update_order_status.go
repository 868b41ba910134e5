package commands

import (
	"context"
	"fmt"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// UpdateOrderStatusCommand sets an order's status. Any known status may
// follow any other; only unknown status strings are rejected.
type UpdateOrderStatusCommand struct {
	OrderID int64
	Status  domain.OrderStatus
}

func (c UpdateOrderStatusCommand) Validate() error {
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidState, c.Status)
	}
	return nil
}

type UpdateOrderStatusCommandHandler struct {
	store  ports.RecordStore
	events ports.EventBus
}

func NewUpdateOrderStatusCommandHandler(store ports.RecordStore, events ports.EventBus) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{store: store, events: events}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Order{}, err
	}

	order, err := h.store.UpdateOrderStatus(ctx, cmd.OrderID, cmd.Status)
	if err != nil {
		return domain.Order{}, err
	}

	if err := h.events.PublishOrderStatusUpdated(ctx, order.ID, order.Status); err != nil {
		return order, fmt.Errorf("status updated but failed to publish event: %w", err)
	}

	return order, nil
}
