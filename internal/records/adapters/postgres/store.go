package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements ports.RecordStore on postgres. Ids come from bigserial
// sequences, which keeps them strictly increasing with 0 never assigned.
// PlaceOrder serializes conflicting placements by locking the product row
// inside a single transaction, so the coupled writes commit or roll back
// together.
type Store struct {
	pool *pgxpool.Pool
}

var _ ports.RecordStore = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	query := `
		INSERT INTO users (name, email, wallet, registration_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, registration_date, is_active
	`

	now := time.Now().UTC()
	err := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.Wallet, now).Scan(
		&user.ID,
		&user.RegistrationDate,
		&user.IsActive,
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (s *Store) CreateUserProfile(ctx context.Context, userID int64, address domain.Address) (domain.UserProfile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("begin profile transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := scanUser(tx.QueryRow(ctx, selectUserQuery, userID))
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !user.Exists() {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	// Overwrite semantics: a second profile for the same user replaces the
	// first, re-snapshots the user, and zeroes both counters.
	query := `
		INSERT INTO user_profiles (
			user_id, snapshot_name, snapshot_email, snapshot_wallet,
			snapshot_registration_date, snapshot_is_active,
			street, city, state, zip_code, country,
			total_orders, loyalty_points
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, 0)
		ON CONFLICT (user_id) DO UPDATE SET
			snapshot_name = EXCLUDED.snapshot_name,
			snapshot_email = EXCLUDED.snapshot_email,
			snapshot_wallet = EXCLUDED.snapshot_wallet,
			snapshot_registration_date = EXCLUDED.snapshot_registration_date,
			snapshot_is_active = EXCLUDED.snapshot_is_active,
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			country = EXCLUDED.country,
			total_orders = 0,
			loyalty_points = 0
	`

	_, err = tx.Exec(ctx, query,
		userID, user.Name, user.Email, user.Wallet,
		user.RegistrationDate, user.IsActive,
		address.Street, address.City, address.State, address.ZipCode, address.Country,
	)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("upsert user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UserProfile{}, fmt.Errorf("commit profile transaction: %w", err)
	}

	return domain.UserProfile{
		UserID:  userID,
		User:    user,
		Address: address,
	}, nil
}

func (s *Store) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, stock, is_available, owner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	product.IsAvailable = domain.AvailableFor(product.Stock)
	err := s.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.IsAvailable,
		product.Owner,
	).Scan(&product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (s *Store) UpdateProductStock(ctx context.Context, productID, newStock int64) (domain.Product, error) {
	query := `
		UPDATE products
		SET stock = $1, is_available = $2
		WHERE id = $3
		RETURNING id, name, description, price, stock, is_available, owner
	`

	var product domain.Product
	err := s.pool.QueryRow(ctx, query, newStock, domain.AvailableFor(newStock), productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.IsAvailable,
		&product.Owner,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("update product stock: %w", err)
	}

	return product, nil
}

func (s *Store) PlaceOrder(ctx context.Context, userID, productID, quantity int64) (domain.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return domain.Order{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.Order{}, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	var price, stock int64
	var available bool
	err = tx.QueryRow(ctx,
		`SELECT price, stock, is_available FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&price, &stock, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("lock product: %w", err)
	}

	if stock < quantity {
		return domain.Order{}, fmt.Errorf("product %d has stock %d, need %d: %w",
			productID, stock, quantity, domain.ErrInvalidState)
	}
	if !available {
		return domain.Order{}, fmt.Errorf("product %d is not available: %w", productID, domain.ErrInvalidState)
	}

	order := domain.Order{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: price * quantity,
		Status:     domain.StatusPending,
		OrderDate:  time.Now().UTC(),
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, product_id, quantity, total_price, status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, order.UserID, order.ProductID, order.Quantity, order.TotalPrice, order.Status, order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	remaining := stock - quantity
	_, err = tx.Exec(ctx,
		`UPDATE products SET stock = $1, is_available = $2 WHERE id = $3`,
		remaining, domain.AvailableFor(remaining), productID,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("decrement stock: %w", err)
	}

	// No-op when the user has no profile; counters only accrue for orders
	// placed after profile creation.
	_, err = tx.Exec(ctx, `
		UPDATE user_profiles
		SET total_orders = total_orders + 1, loyalty_points = loyalty_points + $1
		WHERE user_id = $2
	`, quantity*domain.LoyaltyPointsPerUnit, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update profile counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("commit order transaction: %w", err)
	}

	return order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1,
		    delivery_date = CASE WHEN $1 = 'delivered' THEN $2 ELSE delivery_date END
		WHERE id = $3
		RETURNING id, user_id, product_id, quantity, total_price, status, order_date, delivery_date
	`

	order, err := scanOrder(s.pool.QueryRow(ctx, query, status, time.Now().UTC(), orderID))
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}
	if !order.Exists() {
		return domain.Order{}, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}

	return order, nil
}

const selectUserQuery = `
	SELECT id, name, email, wallet, registration_date, is_active
	FROM users
	WHERE id = $1
`

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	user, err := scanUser(s.pool.QueryRow(ctx, selectUserQuery, id))
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	query := `
		SELECT id, name, description, price, stock, is_available, owner
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.IsAvailable,
		&product.Owner,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, nil
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	query := `
		SELECT id, user_id, product_id, quantity, total_price, status, order_date, delivery_date
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

func (s *Store) GetUserProfile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	query := `
		SELECT user_id, snapshot_name, snapshot_email, snapshot_wallet,
		       snapshot_registration_date, snapshot_is_active,
		       street, city, state, zip_code, country,
		       total_orders, loyalty_points
		FROM user_profiles
		WHERE user_id = $1
	`

	var profile domain.UserProfile
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.User.Name,
		&profile.User.Email,
		&profile.User.Wallet,
		&profile.User.RegistrationDate,
		&profile.User.IsActive,
		&profile.Address.Street,
		&profile.Address.City,
		&profile.Address.State,
		&profile.Address.ZipCode,
		&profile.Address.Country,
		&profile.TotalOrders,
		&profile.LoyaltyPoints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserProfile{}, nil
		}
		return domain.UserProfile{}, fmt.Errorf("select user profile: %w", err)
	}

	profile.User.ID = profile.UserID
	return profile, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Wallet,
		&user.RegistrationDate,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, nil
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var order domain.Order
	var delivered *time.Time
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&order.Status,
		&order.OrderDate,
		&delivered,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, nil
		}
		return domain.Order{}, err
	}
	if delivered != nil {
		order.DeliveryDate = *delivered
	}
	return order, nil
}
