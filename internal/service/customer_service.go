package service

import (
	"context"
	"errors"
	"fmt"

	"crm-backend/internal/domain"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
)

// CustomerResult is the uniform mutation result shape: the entity (nil on
// failure), a human-readable message and a success flag. Validation
// failures and unexpected store errors both land here; mutations never
// return a hard fault for a well-formed request.
type CustomerResult struct {
	Customer *domain.Customer
	Message  string
	Success  bool
}

// BulkCustomersResult accumulates per-item outcomes of a bulk create.
type BulkCustomersResult struct {
	Customers    []*domain.Customer
	Errors       []string
	SuccessCount int
}

// CustomerInput carries one proposed customer for create operations.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	CreateCustomer(ctx context.Context, input CustomerInput) *CustomerResult
	BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) *BulkCustomersResult
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	FilterCustomers(ctx context.Context, filter repository.CustomerFilter, orderBy string) ([]*domain.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// CreateCustomer validates email uniqueness and phone format, then persists.
func (s *customerService) CreateCustomer(ctx context.Context, input CustomerInput) *CustomerResult {
	exists, err := s.customerRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return &CustomerResult{Message: fmt.Sprintf("Error creating customer: %v", err)}
	}
	if exists {
		return &CustomerResult{Message: "Email already exists"}
	}

	customer, err := domain.NewCustomer(input.Name, input.Email, input.Phone)
	if err != nil {
		return &CustomerResult{Message: err.Error()}
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return &CustomerResult{Message: fmt.Sprintf("Error creating customer: %v", err)}
	}

	return &CustomerResult{
		Customer: customer,
		Message:  "Customer created successfully",
		Success:  true,
	}
}

// BulkCreateCustomers processes inputs independently with best-effort
// accumulation: a failing item is recorded under its 1-based position and
// skipped, while every passing item stays committed.
func (s *customerService) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) *BulkCustomersResult {
	result := &BulkCustomersResult{
		Customers: []*domain.Customer{},
		Errors:    []string{},
	}

	for i, input := range inputs {
		exists, err := s.customerRepo.EmailExists(ctx, input.Email)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %v", i+1, err))
			continue
		}
		if exists {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: Email '%s' already exists", i+1, input.Email))
			continue
		}

		customer, err := domain.NewCustomer(input.Name, input.Email, input.Phone)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidPhoneFormat) {
				result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: Invalid phone format", i+1))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %v", i+1, err))
			}
			continue
		}

		if err := s.customerRepo.Create(ctx, customer); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %v", i+1, err))
			continue
		}

		result.Customers = append(result.Customers, customer)
	}

	result.SuccessCount = len(result.Customers)
	return result
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// ListCustomers retrieves all customers
func (s *customerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

// FilterCustomers applies the customer predicate set with optional ordering
func (s *customerService) FilterCustomers(ctx context.Context, filter repository.CustomerFilter, orderBy string) ([]*domain.Customer, error) {
	return s.customerRepo.Filter(ctx, filter, orderBy)
}
