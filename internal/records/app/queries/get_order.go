package queries

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// GetOrderQuery retrieves an order by id with the usual zero-record miss
// semantics.
type GetOrderQuery struct {
	OrderID int64
}

type GetOrderQueryHandler struct {
	store ports.RecordStore
}

func NewGetOrderQueryHandler(store ports.RecordStore) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{store: store}
}

func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (domain.Order, error) {
	return h.store.GetOrder(ctx, query.OrderID)
}
