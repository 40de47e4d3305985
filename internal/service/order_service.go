package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/domain"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
)

// OrderResult is the uniform mutation result shape for order creation.
type OrderResult struct {
	Order   *domain.Order
	Message string
	Success bool
}

// OrderInput carries one proposed order. A nil OrderDate defaults to now.
type OrderInput struct {
	CustomerID uuid.UUID
	ProductIDs []uuid.UUID
	OrderDate  *time.Time
}

// OrderService defines the interface for order business logic
type OrderService interface {
	CreateOrder(ctx context.Context, input OrderInput) *OrderResult
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	FilterOrders(ctx context.Context, filter repository.OrderFilter, orderBy string) ([]*domain.Order, error)
}

type orderService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// CreateOrder resolves the customer and every product reference before any
// write, then delegates the insert/attach/recompute sequence to the store
// as one atomic unit. A fault at any step leaves no partial order visible.
func (s *orderService) CreateOrder(ctx context.Context, input OrderInput) *OrderResult {
	_, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return &OrderResult{Message: fmt.Sprintf("Customer with ID %s does not exist", input.CustomerID)}
		}
		return &OrderResult{Message: fmt.Sprintf("Error creating order: %v", err)}
	}

	if len(input.ProductIDs) == 0 {
		return &OrderResult{Message: "At least one product must be selected"}
	}

	resolved, err := s.productRepo.FindByIDs(ctx, input.ProductIDs)
	if err != nil {
		return &OrderResult{Message: fmt.Sprintf("Error creating order: %v", err)}
	}

	// Duplicates in the input collapse to set semantics; the first missing
	// ID aborts the whole mutation before anything is written.
	products := []*domain.Product{}
	seen := make(map[uuid.UUID]bool, len(input.ProductIDs))
	for _, productID := range input.ProductIDs {
		product, ok := resolved[productID]
		if !ok {
			return &OrderResult{Message: fmt.Sprintf("Product with ID %s does not exist", productID)}
		}
		if !seen[productID] {
			seen[productID] = true
			products = append(products, product)
		}
	}

	var orderDate time.Time
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := domain.NewOrder(input.CustomerID, orderDate)
	if err := s.orderRepo.Create(ctx, order, input.ProductIDs); err != nil {
		return &OrderResult{Message: fmt.Sprintf("Error creating order: %v", err)}
	}
	order.Products = products

	return &OrderResult{
		Order:   order,
		Message: "Order created successfully",
		Success: true,
	}
}

// GetOrder retrieves an order with its products by ID
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListOrders retrieves all orders with their products
func (s *orderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// FilterOrders applies the order predicate set with optional ordering
func (s *orderService) FilterOrders(ctx context.Context, filter repository.OrderFilter, orderBy string) ([]*domain.Order, error) {
	return s.orderRepo.Filter(ctx, filter, orderBy)
}
