package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickdrop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. All
// reads return orders joined with customer and product names.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderDetail, error)
	List(ctx context.Context) ([]*domain.OrderDetail, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.OrderDetail, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderDetailColumns = `
	o.id, o.customer_id, o.product_id, o.address, o.price, o.status,
	o.created_at, o.updated_at, u.name AS customer_name, p.name AS product_name
`

// Create inserts a new order using parameterized queries
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, product_id, address, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.CustomerID,
		order.ProductID,
		order.Address,
		order.Price,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// Update overwrites an existing order's mutable fields
func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET product_id = $2, address = $3, price = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.ProductID,
		order.Address,
		order.Price,
		order.Status,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete permanently removes an order
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// FindByID retrieves an order joined with its customer and product names
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		JOIN products p ON p.id = o.product_id
		WHERE o.id = $1
	`, orderDetailColumns)

	detail := &domain.OrderDetail{}
	err := r.scanDetail(r.db.QueryRowContext(ctx, query, id), detail)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return detail, nil
}

// List retrieves all orders joined with customer and product names
func (r *orderRepository) List(ctx context.Context) ([]*domain.OrderDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		JOIN products p ON p.id = o.product_id
		ORDER BY o.created_at
	`, orderDetailColumns)

	return r.queryDetails(ctx, query)
}

// ListByCustomer retrieves the orders placed by one customer; an empty
// slice when the customer has none.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.OrderDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		JOIN products p ON p.id = o.product_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at
	`, orderDetailColumns)

	return r.queryDetails(ctx, query, customerID)
}

func (r *orderRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]*domain.OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.OrderDetail{}
	for rows.Next() {
		detail := &domain.OrderDetail{}
		if err := r.scanDetail(rows, detail); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *orderRepository) scanDetail(row rowScanner, detail *domain.OrderDetail) error {
	return row.Scan(
		&detail.ID,
		&detail.CustomerID,
		&detail.ProductID,
		&detail.Address,
		&detail.Price,
		&detail.Status,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.CustomerName,
		&detail.ProductName,
	)
}
