package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dejobratic/shop/internal/records/app/commands"
	"github.com/dejobratic/shop/internal/records/domain"
)

func TestCreateUser(t *testing.T) {
	t.Run("creates user and publishes event", func(t *testing.T) {
		published := 0
		events := &mockEventBus{
			publishUserCreatedFn: func(ctx context.Context, userID int64, name, wallet string) error {
				published++
				if userID != 1 || name != "alice" || wallet != "0xabc" {
					t.Errorf("unexpected event payload: id=%d name=%q wallet=%q", userID, name, wallet)
				}
				return nil
			},
		}
		handler := commands.NewCreateUserCommandHandler(&mockStore{}, events)

		user, err := handler.Handle(context.Background(), commands.CreateUserCommand{
			Name:   "alice",
			Email:  "alice@example.com",
			Wallet: "0xabc",
		})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected user id 1, got %d", user.ID)
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
		if published != 1 {
			t.Errorf("expected exactly one published event, got %d", published)
		}
	})

	t.Run("accepts empty name and arbitrary email", func(t *testing.T) {
		handler := commands.NewCreateUserCommandHandler(&mockStore{}, &mockEventBus{})

		user, err := handler.Handle(context.Background(), commands.CreateUserCommand{
			Name:  "",
			Email: "not-an-email",
		})

		if err != nil {
			t.Fatalf("expected no error for unvalidated fields, got: %v", err)
		}
		if !user.Exists() {
			t.Error("expected user to be stored")
		}
	})

	t.Run("returns error when store fails", func(t *testing.T) {
		storeErr := errors.New("database connection failed")
		store := &mockStore{
			createUserFn: func(ctx context.Context, user domain.User) (domain.User, error) {
				return domain.User{}, storeErr
			},
		}
		handler := commands.NewCreateUserCommandHandler(store, &mockEventBus{})

		_, err := handler.Handle(context.Background(), commands.CreateUserCommand{Name: "alice"})

		if !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got: %v", err)
		}
	})

	t.Run("returns user even when event publishing fails", func(t *testing.T) {
		eventErr := errors.New("kafka unavailable")
		events := &mockEventBus{
			publishUserCreatedFn: func(ctx context.Context, userID int64, name, wallet string) error {
				return eventErr
			},
		}
		handler := commands.NewCreateUserCommandHandler(&mockStore{}, events)

		user, err := handler.Handle(context.Background(), commands.CreateUserCommand{Name: "alice"})

		if !errors.Is(err, eventErr) {
			t.Fatalf("expected error to wrap event bus error, got: %v", err)
		}
		if !user.Exists() {
			t.Fatal("expected the created user to be returned despite the event error")
		}
	})
}
