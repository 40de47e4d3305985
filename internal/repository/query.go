package repository

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOrderField = errors.New("invalid order field")

// comparison identifies how a predicate value is matched against a column.
type comparison int

const (
	cmpContains comparison = iota // case-insensitive substring (ILIKE)
	cmpEq
	cmpGte
	cmpLte
	cmpLt
	cmpGt
)

// predicate describes a single named filter condition: the column it reads
// and the comparison applied to the supplied value. Predicates compose with
// logical AND; an omitted predicate is a no-op.
type predicate struct {
	column string
	cmp    comparison
}

// Predicate registries. Each entity's queryable surface is declared here
// explicitly rather than derived from struct reflection, so the filter
// vocabulary is visible and testable in one place.
var (
	customerPredicates = map[string]predicate{
		"name":           {"name", cmpContains},
		"email":          {"email", cmpContains},
		"phone_pattern":  {"phone", cmpContains},
		"created_at_gte": {"created_at", cmpGte},
		"created_at_lte": {"created_at", cmpLte},
	}

	productPredicates = map[string]predicate{
		"name":      {"name", cmpContains},
		"price_gte": {"price", cmpGte},
		"price_lte": {"price", cmpLte},
		"stock":     {"stock", cmpEq},
		"stock_gte": {"stock", cmpGte},
		"stock_lte": {"stock", cmpLte},
		"low_stock": {"stock", cmpLt},
	}

	orderPredicates = map[string]predicate{
		"total_amount_gte": {"o.total_amount", cmpGte},
		"total_amount_lte": {"o.total_amount", cmpLte},
		"order_date_gte":   {"o.order_date", cmpGte},
		"order_date_lte":   {"o.order_date", cmpLte},
		"customer_name":    {"c.name", cmpContains},
		"customer_email":   {"c.email", cmpContains},
		"high_value":       {"o.total_amount", cmpGt},
	}
)

// Sortable columns per entity. Unknown order fields are a configuration
// error, never silently ignored.
var (
	customerOrderFields = map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}

	productOrderFields = map[string]string{
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
	}

	orderOrderFields = map[string]string{
		"order_date":   "o.order_date",
		"total_amount": "o.total_amount",
		"created_at":   "o.created_at",
	}
)

// likeEscaper neutralizes LIKE metacharacters so filter values match
// literally. Backslash is Postgres's default ESCAPE character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps a value for ILIKE substring matching.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// conditionBuilder accumulates AND-composed WHERE conditions with
// positional placeholders numbered after any pre-existing arguments.
type conditionBuilder struct {
	conds []string
	args  []interface{}
}

// apply adds the named predicate from the registry for the given value.
func (b *conditionBuilder) apply(registry map[string]predicate, name string, value interface{}) {
	p, ok := registry[name]
	if !ok {
		// Registries are package-level and fixed; a miss is a programming
		// error surfaced loudly in tests rather than a silent no-op.
		panic(fmt.Sprintf("unknown predicate %q", name))
	}

	switch p.cmp {
	case cmpContains:
		b.args = append(b.args, containsPattern(fmt.Sprintf("%v", value)))
		b.conds = append(b.conds, fmt.Sprintf("%s ILIKE $%d", p.column, len(b.args)))
	case cmpEq:
		b.args = append(b.args, value)
		b.conds = append(b.conds, fmt.Sprintf("%s = $%d", p.column, len(b.args)))
	case cmpGte:
		b.args = append(b.args, value)
		b.conds = append(b.conds, fmt.Sprintf("%s >= $%d", p.column, len(b.args)))
	case cmpLte:
		b.args = append(b.args, value)
		b.conds = append(b.conds, fmt.Sprintf("%s <= $%d", p.column, len(b.args)))
	case cmpLt:
		b.args = append(b.args, value)
		b.conds = append(b.conds, fmt.Sprintf("%s < $%d", p.column, len(b.args)))
	case cmpGt:
		b.args = append(b.args, value)
		b.conds = append(b.conds, fmt.Sprintf("%s > $%d", p.column, len(b.args)))
	}
}

// raw adds a hand-written condition; format must contain one %s verb which
// receives the positional placeholder for value.
func (b *conditionBuilder) raw(format string, value interface{}) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(format, fmt.Sprintf("$%d", len(b.args))))
}

// where renders the accumulated conditions, or an empty string when none.
func (b *conditionBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderClause validates an order_by key against the entity's sortable
// columns and renders the ORDER BY clause. A leading '-' sorts descending.
// An empty key leaves result order unspecified.
func orderClause(orderBy string, fields map[string]string) (string, error) {
	if orderBy == "" {
		return "", nil
	}

	dir := "ASC"
	name := orderBy
	if strings.HasPrefix(orderBy, "-") {
		dir = "DESC"
		name = orderBy[1:]
	}

	column, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderField, name)
	}

	return fmt.Sprintf(" ORDER BY %s %s", column, dir), nil
}
