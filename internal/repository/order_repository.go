package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"crm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStats summarizes the order book for reporting.
type OrderStats struct {
	TotalOrders  int
	TotalRevenue decimal.Decimal
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create persists the order, attaches the product associations and
	// recomputes the denormalized total, all inside one transaction.
	Create(ctx context.Context, order *domain.Order, productIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Filter(ctx context.Context, filter OrderFilter, orderBy string) ([]*domain.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create runs the order-creation transaction: insert the order row, insert
// the association rows (duplicate product IDs collapse on the join table's
// primary key), then recompute total_amount as a full resummation over the
// final association set. A fault at any step rolls everything back.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order, productIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertOrder := `
		INSERT INTO orders (id, customer_id, order_date, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(
		ctx,
		insertOrder,
		order.ID,
		order.CustomerID,
		order.OrderDate,
		decimal.Zero,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	insertAssoc := `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, productID := range productIDs {
		if _, err := tx.ExecContext(ctx, insertAssoc, order.ID, productID); err != nil {
			return fmt.Errorf("failed to attach product %s: %w", productID, err)
		}
	}

	recompute := `
		UPDATE orders
		SET total_amount = (
			SELECT COALESCE(SUM(p.price), 0)
			FROM order_products op
			JOIN products p ON p.id = op.product_id
			WHERE op.order_id = orders.id
		)
		WHERE id = $1
		RETURNING total_amount
	`
	if err := tx.QueryRowContext(ctx, recompute, order.ID).Scan(&order.TotalAmount); err != nil {
		return fmt.Errorf("failed to recompute order total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return nil
}

// FindByID retrieves an order with its associated products
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.order_date, o.total_amount, o.created_at
		FROM orders o
		WHERE o.id = $1
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.loadProducts(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// List retrieves all orders with their products in store order
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.query(ctx, "", nil)
}

// Filter retrieves orders matching the AND-composed predicate set. Customer
// predicates resolve through the join; product predicates through EXISTS on
// the association table.
func (r *orderRepository) Filter(ctx context.Context, filter OrderFilter, orderBy string) ([]*domain.Order, error) {
	order, err := orderClause(orderBy, orderOrderFields)
	if err != nil {
		return nil, err
	}

	b := filter.build()
	return r.query(ctx, b.where()+order, b.args)
}

// Stats aggregates order count and summed revenue for the weekly report.
func (r *orderRepository) Stats(ctx context.Context) (*OrderStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`

	stats := &OrderStats{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}

	return stats, nil
}

func (r *orderRepository) query(ctx context.Context, clause string, args []interface{}) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.order_date, o.total_amount, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
	` + clause

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.loadProducts(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// loadProducts attaches the associated product set to each order with one
// query over the join table.
func (r *orderRepository) loadProducts(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	placeholders := make([]string, len(orders))
	args := make([]interface{}, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i, order := range orders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = order.ID
		byID[order.ID] = order
		order.Products = []*domain.Product{}
	}

	query := fmt.Sprintf(`
		SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		product := &domain.Product{}
		err := rows.Scan(
			&orderID,
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order product: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.Products = append(order.Products, product)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating order products: %w", err)
	}

	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}

	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.OrderDate,
		&order.TotalAmount,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}
