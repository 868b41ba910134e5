//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dejobratic/shop/internal/database"
	"github.com/dejobratic/shop/internal/records/adapters/postgres"
	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	projectRoot := findProjectRoot(t)
	migrationsPath := filepath.Join(projectRoot, "migrations")

	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func TestStoreCreateUser(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	first, err := store.CreateUser(ctx, domain.User{Name: "alice", Email: "alice@example.com", Wallet: "0xabc"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	second, err := store.CreateUser(ctx, domain.User{Name: "bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if !first.IsActive {
		t.Error("expected new user to be active")
	}
	if first.RegistrationDate.IsZero() {
		t.Error("expected registration date to be stamped")
	}

	retrieved, err := store.GetUser(ctx, first.ID)
	if err != nil {
		t.Fatalf("failed to retrieve user: %v", err)
	}
	if retrieved.Name != "alice" || retrieved.Wallet != "0xabc" {
		t.Errorf("expected stored user back, got %+v", retrieved)
	}
}

func TestStoreGetUser_Missing(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)

	user, err := store.GetUser(context.Background(), 999)
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if user.Exists() {
		t.Errorf("expected zero record, got %+v", user)
	}
}

func TestStoreProductAvailability(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	inStock, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 5})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	if !inStock.IsAvailable {
		t.Error("expected in-stock product to be available")
	}

	outOfStock, err := store.AddProduct(ctx, domain.Product{Name: "Gadget", Price: 50, Stock: 0})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	if outOfStock.IsAvailable {
		t.Error("expected zero stock product to be unavailable")
	}

	restocked, err := store.UpdateProductStock(ctx, outOfStock.ID, 3)
	if err != nil {
		t.Fatalf("failed to update stock: %v", err)
	}
	if restocked.Stock != 3 || !restocked.IsAvailable {
		t.Errorf("expected restocked product to be available, got %+v", restocked)
	}

	drained, err := store.UpdateProductStock(ctx, inStock.ID, 0)
	if err != nil {
		t.Fatalf("failed to update stock: %v", err)
	}
	if drained.IsAvailable {
		t.Error("expected drained product to be unavailable")
	}
}

func TestStoreUpdateProductStock_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)

	_, err := store.UpdateProductStock(context.Background(), 999, 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorePlaceOrder(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 2})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	if _, err := store.CreateUserProfile(ctx, user.ID, domain.Address{City: "Springfield"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	order, err := store.PlaceOrder(ctx, user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	if order.TotalPrice != 200 {
		t.Errorf("expected total price 200, got %d", order.TotalPrice)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected pending order, got %s", order.Status)
	}

	updatedProduct, err := store.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to retrieve product: %v", err)
	}
	if updatedProduct.Stock != 0 || updatedProduct.IsAvailable {
		t.Errorf("expected sold out product, got stock=%d available=%v",
			updatedProduct.Stock, updatedProduct.IsAvailable)
	}

	profile, err := store.GetUserProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to retrieve profile: %v", err)
	}
	if profile.TotalOrders != 1 || profile.LoyaltyPoints != 2*domain.LoyaltyPointsPerUnit {
		t.Errorf("expected counters orders=1 points=%d, got orders=%d points=%d",
			2*domain.LoyaltyPointsPerUnit, profile.TotalOrders, profile.LoyaltyPoints)
	}

	_, err = store.PlaceOrder(ctx, user.ID, product.ID, 1)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for sold out product, got %v", err)
	}
}

func TestStorePlaceOrder_Rejections(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 2})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}

	t.Run("missing user", func(t *testing.T) {
		_, err := store.PlaceOrder(ctx, 999, product.ID, 1)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := store.PlaceOrder(ctx, user.ID, 999, 1)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("insufficient stock leaves state untouched", func(t *testing.T) {
		_, err := store.PlaceOrder(ctx, user.ID, product.ID, 3)
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}

		after, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to retrieve product: %v", err)
		}
		if after.Stock != 2 || !after.IsAvailable {
			t.Errorf("expected stock untouched at 2, got %+v", after)
		}
	})
}

func TestStoreProfileOverwriteResetsCounters(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	if _, err := store.CreateUserProfile(ctx, user.ID, domain.Address{City: "Springfield"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if _, err := store.PlaceOrder(ctx, user.ID, product.ID, 3); err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	replaced, err := store.CreateUserProfile(ctx, user.ID, domain.Address{City: "Shelbyville"})
	if err != nil {
		t.Fatalf("failed to replace profile: %v", err)
	}

	if replaced.TotalOrders != 0 || replaced.LoyaltyPoints != 0 {
		t.Errorf("expected counters reset on overwrite, got orders=%d points=%d",
			replaced.TotalOrders, replaced.LoyaltyPoints)
	}
	if replaced.Address.City != "Shelbyville" {
		t.Errorf("expected new address, got %+v", replaced.Address)
	}
}

func TestStoreUpdateOrderStatus(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	order, err := store.PlaceOrder(ctx, user.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	delivered, err := store.UpdateOrderStatus(ctx, order.ID, domain.StatusDelivered)
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if delivered.Status != domain.StatusDelivered {
		t.Errorf("expected delivered, got %s", delivered.Status)
	}
	if delivered.DeliveryDate.IsZero() {
		t.Error("expected delivery date to be stamped")
	}

	firstStamp := delivered.DeliveryDate
	time.Sleep(10 * time.Millisecond)

	if _, err := store.UpdateOrderStatus(ctx, order.ID, domain.StatusShipped); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	again, err := store.UpdateOrderStatus(ctx, order.ID, domain.StatusDelivered)
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if !again.DeliveryDate.After(firstStamp) {
		t.Error("expected delivery date to be re-stamped on repeat delivery")
	}

	_, err = store.UpdateOrderStatus(ctx, 999, domain.StatusConfirmed)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreCancelDoesNotRestock(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 5})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	order, err := store.PlaceOrder(ctx, user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	if _, err := store.UpdateOrderStatus(ctx, order.ID, domain.StatusCancelled); err != nil {
		t.Fatalf("failed to cancel order: %v", err)
	}

	after, err := store.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to retrieve product: %v", err)
	}
	if after.Stock != 3 {
		t.Errorf("expected stock to stay at 3 after cancellation, got %d", after.Stock)
	}
}

func TestStoreConcurrentPlacement(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, domain.User{Name: "alice"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	product, err := store.AddProduct(ctx, domain.Product{Name: "Widget", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.PlaceOrder(ctx, user.ID, product.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	placed := 0
	for err := range results {
		if err == nil {
			placed++
		} else if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if placed != 10 {
		t.Errorf("expected exactly 10 successful placements, got %d", placed)
	}

	after, err := store.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to retrieve product: %v", err)
	}
	if after.Stock != 0 || after.IsAvailable {
		t.Errorf("expected sold out product, got %+v", after)
	}
}
