package queries

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// GetUserQuery retrieves a user by id. A missing id yields the zero-valued
// record, never an error; callers check User.Exists().
type GetUserQuery struct {
	UserID int64
}

type GetUserQueryHandler struct {
	store ports.RecordStore
}

func NewGetUserQueryHandler(store ports.RecordStore) *GetUserQueryHandler {
	return &GetUserQueryHandler{store: store}
}

func (h *GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (domain.User, error) {
	return h.store.GetUser(ctx, query.UserID)
}
