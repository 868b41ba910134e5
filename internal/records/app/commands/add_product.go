package commands

import (
	"context"
	"fmt"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

type AddProductCommand struct {
	Name        string
	Description string
	Price       int64
	Stock       int64
	Owner       string
}

func (c AddProductCommand) Validate() error {
	if c.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidState)
	}
	if c.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", domain.ErrInvalidState)
	}
	return nil
}

type AddProductCommandHandler struct {
	store  ports.RecordStore
	events ports.EventBus
}

func NewAddProductCommandHandler(store ports.RecordStore, events ports.EventBus) *AddProductCommandHandler {
	return &AddProductCommandHandler{store: store, events: events}
}

func (h *AddProductCommandHandler) Handle(ctx context.Context, cmd AddProductCommand) (domain.Product, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Product{}, err
	}

	product, err := h.store.AddProduct(ctx, domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		Owner:       cmd.Owner,
	})
	if err != nil {
		return domain.Product{}, err
	}

	if err := h.events.PublishProductAdded(ctx, product.ID, product.Name, product.Price); err != nil {
		return product, fmt.Errorf("product added but failed to publish event: %w", err)
	}

	return product, nil
}
