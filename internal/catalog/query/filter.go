// Package query implements the filtering and pagination engine applied
// to product sequences before they are paginated or aggregated.
package query

import (
	"strconv"
	"strings"

	"github.com/rlagos/catalog-api/internal/catalog/store"
)

// Criteria is an optional set of conjunctive product filters.
// A nil pointer or empty name imposes no constraint on that field.
type Criteria struct {
	Name  string
	Price *float64
	Stock *float64
}

// Filter returns the products matching every present criterion, preserving
// input order. The input slice is never mutated.
//
// Name matches by case-insensitive substring. Price and stock match by
// decimal-string containment: both the criterion and the product field are
// rendered as decimal text and tested with strings.Contains, so a price
// criterion of 10 also matches 100 and 1000. This mirrors the upstream
// behavior and is covered by tests; switching to numeric equality is a
// product decision, not a refactor.
func Filter(products []store.Product, c Criteria) []store.Product {
	name := strings.ToLower(c.Name)
	noName := strings.TrimSpace(name) == ""

	filtered := make([]store.Product, 0, len(products))
	for _, p := range products {
		if !noName && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if c.Price != nil && !containsDecimal(p.Price, *c.Price) {
			continue
		}
		if c.Stock != nil && !containsDecimal(p.Stock, *c.Stock) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// containsDecimal reports whether the decimal text of criterion occurs
// within the decimal text of field.
func containsDecimal(field, criterion float64) bool {
	return strings.Contains(decimalText(field), decimalText(criterion))
}

// decimalText renders a number as its shortest decimal representation,
// e.g. 100 -> "100", 10.5 -> "10.5".
func decimalText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
