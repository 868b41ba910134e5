package commands

import (
	"context"
	"fmt"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// UpdateProductStockCommand overwrites a product's stock level. There is
// no floor check against outstanding orders; availability is recomputed
// from the new value. No event is emitted.
type UpdateProductStockCommand struct {
	ProductID int64
	NewStock  int64
}

func (c UpdateProductStockCommand) Validate() error {
	if c.NewStock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", domain.ErrInvalidState)
	}
	return nil
}

type UpdateProductStockCommandHandler struct {
	store ports.RecordStore
}

func NewUpdateProductStockCommandHandler(store ports.RecordStore) *UpdateProductStockCommandHandler {
	return &UpdateProductStockCommandHandler{store: store}
}

func (h *UpdateProductStockCommandHandler) Handle(ctx context.Context, cmd UpdateProductStockCommand) (domain.Product, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Product{}, err
	}

	return h.store.UpdateProductStock(ctx, cmd.ProductID, cmd.NewStock)
}
