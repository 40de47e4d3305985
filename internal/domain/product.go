package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const LowStockThreshold = 10

var (
	ErrInvalidPrice = errors.New("Price must be positive")
	ErrInvalidStock = errors.New("Stock cannot be negative")
)

// Product represents a product in the catalog. Prices are fixed-point
// decimals with 2 fractional digits; money never goes through float64.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// NewProduct builds a product with a fresh ID. Price must be strictly
// positive and stock non-negative; stock defaults to 0 when nil.
func NewProduct(name string, price decimal.Decimal, stock *int) (*Product, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	s := 0
	if stock != nil {
		s = *stock
	}
	if s < 0 {
		return nil, ErrInvalidStock
	}

	return &Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price.Round(2),
		Stock:     s,
		CreatedAt: time.Now(),
	}, nil
}

// LowStock reports whether the product is below the restock threshold.
func (p *Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}
