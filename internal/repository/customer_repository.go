package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-backend/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Filter(ctx context.Context, filter CustomerFilter, orderBy string) ([]*domain.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer using parameterized queries
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	phone := sql.NullString{String: customer.Phone, Valid: customer.Phone != ""}

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Email,
		phone,
		customer.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByID retrieves a customer by ID
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}

	return customer, nil
}

// List retrieves all customers in store order
func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	return r.query(ctx, "", nil)
}

// Filter retrieves customers matching the AND-composed predicate set,
// optionally ordered by a whitelisted field.
func (r *customerRepository) Filter(ctx context.Context, filter CustomerFilter, orderBy string) ([]*domain.Customer, error) {
	order, err := orderClause(orderBy, customerOrderFields)
	if err != nil {
		return nil, err
	}

	b := filter.build()
	return r.query(ctx, b.where()+order, b.args)
}

// EmailExists checks email uniqueness with a case-sensitive exact match.
func (r *customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// Count returns the total number of customers
func (r *customerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *customerRepository) query(ctx context.Context, clause string, args []interface{}) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
	` + clause

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var phone sql.NullString

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&phone,
		&customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.Phone = phone.String
	return customer, nil
}
