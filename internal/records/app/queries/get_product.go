package queries

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// GetProductQuery retrieves a product by id with the usual zero-record
// miss semantics.
type GetProductQuery struct {
	ProductID int64
}

type GetProductQueryHandler struct {
	store ports.RecordStore
}

func NewGetProductQueryHandler(store ports.RecordStore) *GetProductQueryHandler {
	return &GetProductQueryHandler{store: store}
}

func (h *GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (domain.Product, error) {
	return h.store.GetProduct(ctx, query.ProductID)
}
