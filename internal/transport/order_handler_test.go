package transport

import (
	"fmt"
	"net/http"
	"testing"

	"crm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func seedOrderCustomer(t *testing.T, env *testEnv) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer("Alice", "alice@example.com", "")
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	env.customers.customers[customer.ID] = customer
	return customer
}

func TestOrderCreateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	customer := seedOrderCustomer(t, env)
	p1 := seedStockedProduct(t, env, "Widget", "100.00", 5)
	p2 := seedStockedProduct(t, env, "Gadget", "450.75", 5)

	w := postJSON(t, env.router, "/api/orders/", map[string]interface{}{
		"customer_id": customer.ID,
		"product_ids": []uuid.UUID{p1.ID, p2.ID},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp OrderMutationResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Fatalf("success = false, message = %q", resp.Message)
	}
	if resp.Message != "Order created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	want := decimal.RequireFromString("550.75")
	if !resp.Order.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", resp.Order.TotalAmount, want)
	}
	if len(resp.Order.Products) != 2 {
		t.Errorf("products = %d, want 2", len(resp.Order.Products))
	}
}

func TestOrderCreateEndpointUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)
	product := seedStockedProduct(t, env, "Widget", "5.00", 5)

	missing := uuid.New()
	w := postJSON(t, env.router, "/api/orders/", map[string]interface{}{
		"customer_id": missing,
		"product_ids": []uuid.UUID{product.ID},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with success=false", w.Code)
	}

	var resp OrderMutationResponse
	decodeBody(t, w, &resp)
	if resp.Success {
		t.Error("unknown customer must report success=false")
	}
	want := fmt.Sprintf("Customer with ID %s does not exist", missing)
	if resp.Message != want {
		t.Errorf("message = %q, want %q", resp.Message, want)
	}
}

func TestOrderCreateEndpointNoProducts(t *testing.T) {
	env := newTestEnv(t)
	customer := seedOrderCustomer(t, env)

	w := postJSON(t, env.router, "/api/orders/", map[string]interface{}{
		"customer_id": customer.ID,
		"product_ids": []uuid.UUID{},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with success=false", w.Code)
	}

	var resp OrderMutationResponse
	decodeBody(t, w, &resp)
	if resp.Success {
		t.Error("empty product list must report success=false")
	}
	if resp.Message != "At least one product must be selected" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(env.orders.orders) != 0 {
		t.Error("failed mutation must not persist an order")
	}
}

func TestOrderSearchEndpointHighValue(t *testing.T) {
	env := newTestEnv(t)
	customer := seedOrderCustomer(t, env)
	cheap := seedStockedProduct(t, env, "Cheap", "10.00", 5)
	dear := seedStockedProduct(t, env, "Dear", "600.00", 5)

	for _, p := range []*domain.Product{cheap, dear} {
		w := postJSON(t, env.router, "/api/orders/", map[string]interface{}{
			"customer_id": customer.ID,
			"product_ids": []uuid.UUID{p.ID},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed order status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	w := postJSON(t, env.router, "/api/orders/search", map[string]interface{}{
		"high_value": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got []*domain.Order
	decodeBody(t, w, &got)
	if len(got) != 1 {
		t.Fatalf("high_value matches = %d, want 1", len(got))
	}
	if !got[0].TotalAmount.Equal(decimal.RequireFromString("600.00")) {
		t.Errorf("matched total = %s, want 600.00", got[0].TotalAmount)
	}
}

func TestOrderSearchEndpointBadOrderField(t *testing.T) {
	env := newTestEnv(t)

	w := postJSON(t, env.router, "/api/orders/search", map[string]interface{}{
		"order_by": "-customer_shoe_size",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown order field", w.Code)
	}
}

func TestOrderGetEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := getJSON(t, env.router, "/api/orders/"+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
