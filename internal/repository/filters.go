package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crm-backend/internal/domain"
)

// Filter structs carry the optional predicate values for each entity.
// Nil fields are omitted predicates; boolean shorthands apply only when
// true, matching their AND-combinator semantics.

type CustomerFilter struct {
	Name         *string
	Email        *string
	PhonePattern *string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
}

func (f CustomerFilter) build() *conditionBuilder {
	b := &conditionBuilder{}
	if f.Name != nil {
		b.apply(customerPredicates, "name", *f.Name)
	}
	if f.Email != nil {
		b.apply(customerPredicates, "email", *f.Email)
	}
	if f.PhonePattern != nil {
		b.apply(customerPredicates, "phone_pattern", *f.PhonePattern)
	}
	if f.CreatedAtGte != nil {
		b.apply(customerPredicates, "created_at_gte", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		b.apply(customerPredicates, "created_at_lte", *f.CreatedAtLte)
	}
	return b
}

type ProductFilter struct {
	Name     *string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	Stock    *int
	StockGte *int
	StockLte *int
	LowStock *bool
}

func (f ProductFilter) build() *conditionBuilder {
	b := &conditionBuilder{}
	if f.Name != nil {
		b.apply(productPredicates, "name", *f.Name)
	}
	if f.PriceGte != nil {
		b.apply(productPredicates, "price_gte", *f.PriceGte)
	}
	if f.PriceLte != nil {
		b.apply(productPredicates, "price_lte", *f.PriceLte)
	}
	if f.Stock != nil {
		b.apply(productPredicates, "stock", *f.Stock)
	}
	if f.StockGte != nil {
		b.apply(productPredicates, "stock_gte", *f.StockGte)
	}
	if f.StockLte != nil {
		b.apply(productPredicates, "stock_lte", *f.StockLte)
	}
	if f.LowStock != nil && *f.LowStock {
		b.apply(productPredicates, "low_stock", domain.LowStockThreshold)
	}
	return b
}

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   *string
	CustomerEmail  *string
	ProductName    *string
	ProductID      *uuid.UUID
	ProductCount   *int
	HighValue      *bool
}

func (f OrderFilter) build() *conditionBuilder {
	b := &conditionBuilder{}
	if f.TotalAmountGte != nil {
		b.apply(orderPredicates, "total_amount_gte", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		b.apply(orderPredicates, "total_amount_lte", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		b.apply(orderPredicates, "order_date_gte", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		b.apply(orderPredicates, "order_date_lte", *f.OrderDateLte)
	}
	if f.CustomerName != nil {
		b.apply(orderPredicates, "customer_name", *f.CustomerName)
	}
	if f.CustomerEmail != nil {
		b.apply(orderPredicates, "customer_email", *f.CustomerEmail)
	}
	if f.ProductName != nil {
		b.raw("EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = o.id AND p.name ILIKE %s)",
			containsPattern(*f.ProductName))
	}
	if f.ProductID != nil {
		b.raw("EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = %s)",
			*f.ProductID)
	}
	if f.ProductCount != nil {
		// Exact match on the current association count, computed by
		// aggregation rather than stored.
		b.raw("(SELECT COUNT(*) FROM order_products op WHERE op.order_id = o.id) = %s",
			*f.ProductCount)
	}
	if f.HighValue != nil && *f.HighValue {
		b.apply(orderPredicates, "high_value", domain.HighValueFloor)
	}
	return b
}
