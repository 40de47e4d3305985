package service

import (
	"context"
	"fmt"

	"crm-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportSummary is the weekly report payload: customer and order counts
// plus summed revenue over all orders.
type ReportSummary struct {
	TotalCustomers int             `json:"total_customers"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// ReportService aggregates CRM statistics for reporting.
type ReportService interface {
	Summary(ctx context.Context) (*ReportSummary, error)
}

type reportService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewReportService creates a new instance of ReportService
func NewReportService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) ReportService {
	return &reportService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// Summary counts customers and aggregates the order book.
func (s *reportService) Summary(ctx context.Context) (*ReportSummary, error) {
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	return &ReportSummary{
		TotalCustomers: customers,
		TotalOrders:    stats.TotalOrders,
		TotalRevenue:   stats.TotalRevenue,
	}, nil
}
