package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HighValueFloor is the exclusive lower bound for the high_value predicate.
var HighValueFloor = decimal.NewFromInt(500)

// Order owns a set of products (order-insensitive, duplicates collapsed)
// and a denormalized total kept equal to the sum of their prices.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CustomerID  uuid.UUID       `json:"customer_id" db:"customer_id"`
	Products    []*Product      `json:"products,omitempty"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// NewOrder builds an order for a customer. The order date defaults to now
// when the zero value is given; the total starts at zero and is recomputed
// by the creation transaction once associations are attached.
func NewOrder(customerID uuid.UUID, orderDate time.Time) *Order {
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		OrderDate:   orderDate,
		TotalAmount: decimal.Zero,
		CreatedAt:   time.Now(),
	}
}

// CalculateTotal resums prices over the currently associated products.
// An order with no products totals zero.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	o.TotalAmount = total.Round(2)
	return o.TotalAmount
}

// HighValue reports whether the order total strictly exceeds 500.
func (o *Order) HighValue() bool {
	return o.TotalAmount.GreaterThan(HighValueFloor)
}
