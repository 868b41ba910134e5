package commands

import (
	"context"
	"fmt"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
)

// CreateUserCommand carries the fields of a new user. Name and email are
// opaque strings with no format constraints; creation always succeeds.
type CreateUserCommand struct {
	Name   string
	Email  string
	Wallet string
}

type CreateUserCommandHandler struct {
	store  ports.RecordStore
	events ports.EventBus
}

func NewCreateUserCommandHandler(store ports.RecordStore, events ports.EventBus) *CreateUserCommandHandler {
	return &CreateUserCommandHandler{store: store, events: events}
}

func (h *CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (domain.User, error) {
	user, err := h.store.CreateUser(ctx, domain.User{
		Name:   cmd.Name,
		Email:  cmd.Email,
		Wallet: cmd.Wallet,
	})
	if err != nil {
		return domain.User{}, err
	}

	if err := h.events.PublishUserCreated(ctx, user.ID, user.Name, user.Wallet); err != nil {
		return user, fmt.Errorf("user created but failed to publish event: %w", err)
	}

	return user, nil
}
