package service

import (
	"context"
	"fmt"

	"crm-backend/internal/domain"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestockIncrement is the stock added to each low-stock product by the
// corrective mutation.
const RestockIncrement = 10

// ProductResult is the uniform mutation result shape for product creation.
type ProductResult struct {
	Product *domain.Product
	Message string
	Success bool
}

// LowStockResult reports the outcome of the low-stock corrective mutation.
type LowStockResult struct {
	Products []*domain.Product
	Count    int
	Message  string
	Success  bool
}

// ProductInput carries one proposed product. A nil Stock defaults to 0.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

// ProductService defines the interface for product business logic
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) *ProductResult
	UpdateLowStockProducts(ctx context.Context) *LowStockResult
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	FilterProducts(ctx context.Context, filter repository.ProductFilter, orderBy string) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// CreateProduct validates price and stock, then persists.
func (s *productService) CreateProduct(ctx context.Context, input ProductInput) *ProductResult {
	product, err := domain.NewProduct(input.Name, input.Price, input.Stock)
	if err != nil {
		return &ProductResult{Message: err.Error()}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return &ProductResult{Message: fmt.Sprintf("Error creating product: %v", err)}
	}

	return &ProductResult{
		Product: product,
		Message: "Product created successfully",
		Success: true,
	}
}

// UpdateLowStockProducts adds stock to every product below the low-stock
// threshold. The whole corrective update is one statement against the
// store, so it is atomic.
func (s *productService) UpdateLowStockProducts(ctx context.Context) *LowStockResult {
	products, err := s.productRepo.RestockBelow(ctx, domain.LowStockThreshold, RestockIncrement)
	if err != nil {
		return &LowStockResult{
			Products: []*domain.Product{},
			Message:  fmt.Sprintf("Error updating low-stock products: %v", err),
		}
	}

	return &LowStockResult{
		Products: products,
		Count:    len(products),
		Message:  fmt.Sprintf("Successfully updated %d low-stock products", len(products)),
		Success:  true,
	}
}

// GetProduct retrieves a product by ID
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts retrieves all products
func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// FilterProducts applies the product predicate set with optional ordering
func (s *productService) FilterProducts(ctx context.Context, filter repository.ProductFilter, orderBy string) ([]*domain.Product, error) {
	return s.productRepo.Filter(ctx, filter, orderBy)
}
