package queries

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// GetUserProfileQuery retrieves the denormalized profile aggregate for a
// user. The embedded user is the snapshot taken at profile creation, and
// the counters feed the derived loyalty and order-count reads.
type GetUserProfileQuery struct {
	UserID int64
}

type GetUserProfileQueryHandler struct {
	store ports.RecordStore
}

func NewGetUserProfileQueryHandler(store ports.RecordStore) *GetUserProfileQueryHandler {
	return &GetUserProfileQueryHandler{store: store}
}

func (h *GetUserProfileQueryHandler) Handle(ctx context.Context, query GetUserProfileQuery) (domain.UserProfile, error) {
	return h.store.GetUserProfile(ctx, query.UserID)
}
