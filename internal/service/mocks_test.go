package service

import (
	"context"

	"crm-backend/internal/domain"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mock repositories for testing

type mockCustomerRepository struct {
	customers map[uuid.UUID]*domain.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, exists := m.customers[id]
	if !exists {
		return nil, repository.ErrCustomerNotFound
	}
	return customer, nil
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	out := []*domain.Customer{}
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCustomerRepository) Filter(ctx context.Context, filter repository.CustomerFilter, orderBy string) ([]*domain.Customer, error) {
	return m.List(ctx)
}

func (m *mockCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int, error) {
	return len(m.customers), nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	out := make(map[uuid.UUID]*domain.Product)
	for _, id := range ids {
		if p, exists := m.products[id]; exists {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepository) Filter(ctx context.Context, filter repository.ProductFilter, orderBy string) ([]*domain.Product, error) {
	return m.List(ctx)
}

func (m *mockProductRepository) RestockBelow(ctx context.Context, threshold, increment int) ([]*domain.Product, error) {
	updated := []*domain.Product{}
	for _, p := range m.products {
		if p.Stock < threshold {
			p.Stock += increment
			updated = append(updated, p)
		}
	}
	return updated, nil
}

type mockOrderRepository struct {
	orders   map[uuid.UUID]*domain.Order
	products *mockProductRepository
}

func newMockOrderRepository(products *mockProductRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[uuid.UUID]*domain.Order),
		products: products,
	}
}

// Create mirrors the store's transactional semantics: duplicate product IDs
// collapse, and the total is recomputed from the attached products' prices.
func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order, productIDs []uuid.UUID) error {
	total := decimal.Zero
	seen := make(map[uuid.UUID]bool)
	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, exists := m.products.products[id]
		if !exists {
			return repository.ErrProductNotFound
		}
		total = total.Add(p.Price)
	}
	order.TotalAmount = total
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderRepository) Filter(ctx context.Context, filter repository.OrderFilter, orderBy string) ([]*domain.Order, error) {
	return m.List(ctx)
}

func (m *mockOrderRepository) Stats(ctx context.Context) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{TotalRevenue: decimal.Zero}
	for _, o := range m.orders {
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
	}
	return stats, nil
}
