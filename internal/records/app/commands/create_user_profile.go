package commands

import (
	"context"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// CreateUserProfileCommand attaches an address-bearing profile to a user.
// Re-creating a profile replaces the old one wholesale; this mirrors the
// store's overwrite semantics and emits no event.
type CreateUserProfileCommand struct {
	UserID  int64
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

type CreateUserProfileCommandHandler struct {
	store ports.RecordStore
}

func NewCreateUserProfileCommandHandler(store ports.RecordStore) *CreateUserProfileCommandHandler {
	return &CreateUserProfileCommandHandler{store: store}
}

func (h *CreateUserProfileCommandHandler) Handle(ctx context.Context, cmd CreateUserProfileCommand) (domain.UserProfile, error) {
	return h.store.CreateUserProfile(ctx, cmd.UserID, domain.Address{
		Street:  cmd.Street,
		City:    cmd.City,
		State:   cmd.State,
		ZipCode: cmd.ZipCode,
		Country: cmd.Country,
	})
}
