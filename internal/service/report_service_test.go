package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestReportSummary(t *testing.T) {
	customerRepo := newMockCustomerRepository()
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository(productRepo)
	svc := NewReportService(customerRepo, orderRepo)
	orders := NewOrderService(customerRepo, productRepo, orderRepo)
	ctx := context.Background()

	alice := seedCustomer(t, customerRepo)
	p1 := seedProduct(t, productRepo, "Widget", "100.50")
	p2 := seedProduct(t, productRepo, "Gadget", "49.50")

	for _, ids := range [][]uuid.UUID{{p1.ID}, {p1.ID, p2.ID}} {
		result := orders.CreateOrder(ctx, OrderInput{CustomerID: alice.ID, ProductIDs: ids})
		if !result.Success {
			t.Fatalf("seed order failed: %q", result.Message)
		}
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalCustomers != 1 {
		t.Errorf("customers = %d, want 1", summary.TotalCustomers)
	}
	if summary.TotalOrders != 2 {
		t.Errorf("orders = %d, want 2", summary.TotalOrders)
	}
	want := decimal.RequireFromString("250.50")
	if !summary.TotalRevenue.Equal(want) {
		t.Errorf("revenue = %s, want %s", summary.TotalRevenue, want)
	}
}

func TestReportSummaryEmptyStore(t *testing.T) {
	customerRepo := newMockCustomerRepository()
	orderRepo := newMockOrderRepository(newMockProductRepository())
	svc := NewReportService(customerRepo, orderRepo)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalCustomers != 0 || summary.TotalOrders != 0 {
		t.Errorf("empty store counts = %+v", summary)
	}
	if !summary.TotalRevenue.IsZero() {
		t.Errorf("empty store revenue = %s, want 0", summary.TotalRevenue)
	}
}
